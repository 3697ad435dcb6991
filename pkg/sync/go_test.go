package sync

import (
	"sync"
	"testing"
)

func TestGo_RunsFunctionInBackground(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	ran := false
	Go(func() {
		ran = true
		wg.Done()
	})

	wg.Wait()
	if !ran {
		t.Fatal("Go did not run the function")
	}
}

func TestGo_ReportsPanicsToErrorHandlers(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)

	var reported error
	Go(func() {
		panic("boom")
	}, func(err error) {
		reported = err
		wg.Done()
	})

	wg.Wait()
	if reported == nil {
		t.Fatal("expected the panic to be reported to the error handler")
	}
}
