// Package jobs implements background processing for the community API.
//
// Jobs run independently of HTTP request handling and share one lifecycle:
//
//	sweeper := jobs.NewTempbanSweeper(jobs.TempbanSweeperConfig{
//	    Clearer:  accountService,
//	    Interval: 5 * time.Minute,
//	})
//	sweeper.Start()
//	defer sweeper.Stop()
//
// Jobs log errors but don't crash the application; the next tick retries.
package jobs
