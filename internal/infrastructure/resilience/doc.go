/*
Package resilience guards calls into the dynamic filesystem backend.

A Breaker tracks consecutive failures of the loaded library. Once the
threshold trips, calls short-circuit with ErrOpen and the caller falls
back to the native implementation; after the cooldown a bounded number of
probe calls test whether the library recovered.

	breaker := resilience.New("backend", resilience.Settings{
		FailureThreshold: 3,
		Cooldown:         30 * time.Second,
	})

	err := breaker.Do(func() error {
		return lib.Call()
	})

States cycle as:

	Closed --[failures]-> Open --[cooldown]-> Half-Open --[probe success]-> Closed
	                       ^                       |
	                       +----[probe failure]----+
*/
package resilience
