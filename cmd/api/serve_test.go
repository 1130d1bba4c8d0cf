package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	httpadp "realreselling/internal/adapter/http"
	"realreselling/internal/notify"
)

func TestRun_StopsOnCancel(t *testing.T) {
	e := httpadp.NewEcho()
	httpadp.Register(e, httpadp.Routes{})

	d := notify.NewDispatcher(time.Second, nil)
	sinkDone := make(chan struct{})
	d.Go(func(ctx context.Context) notify.Result {
		time.Sleep(50 * time.Millisecond)
		close(sinkDone)
		return notify.Sent("test")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, e, &http.Server{Addr: "127.0.0.1:0", Handler: e}, d) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("run did not stop")
	}

	select {
	case <-sinkDone:
	default:
		t.Fatalf("pending notification was not drained")
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	want := map[string]bool{"serve": false, "migrate": false}
	for _, c := range RootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("missing %s command", name)
		}
	}
}
