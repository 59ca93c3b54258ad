// Package enumerate lists and searches directory contents.
//
// Listing applies the hidden filter before the name-pattern filter and
// returns each directory's entries sorted directories first, then symlinks,
// then files, alphabetic within each class. That order is a contract;
// recursive listings emit a directory's subtree immediately after the
// directory entry itself, every level sorted the same way.
//
// Search is breadth-first over an explicit FIFO queue and matches by
// case-sensitive substring containment, not glob syntax. Recursion never
// uses the call stack, so arbitrarily deep trees cannot overflow it.
package enumerate
