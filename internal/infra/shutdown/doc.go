// Package shutdown coordinates cleanup when the interactive client exits.
//
// Hooks such as flushing command history or closing the session store are
// registered once and run exactly once, whether the user typed "exit" or
// the process received SIGINT/SIGTERM:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown(store.Close)
//	go h.Wait(ctx)
//	defer h.Shutdown()
package shutdown
