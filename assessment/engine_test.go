package assessment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeo-assessment/backend/signals"
)

func TestBrandFromHost(t *testing.T) {
	cases := map[string]string{
		"www.acme-corp.co.uk": "acme corp",
		"example.com":         "example",
		"blog.example.com":    "blog",
		"ACME.com":            "acme",
	}
	for host, want := range cases {
		assert.Equal(t, want, brandFromHost(host), "host %q", host)
	}
}

func TestSettleDeliversValue(t *testing.T) {
	ch := settle(func() int { return 42 }, -1)
	select {
	case v := <-ch:
		assert.Equal(t, 42, v)
	case <-time.After(time.Second):
		t.Fatal("settle never delivered")
	}
}

func TestSettleRecoversPanic(t *testing.T) {
	ch := settle(func() string { panic("provider exploded") }, "fallback")
	select {
	case v := <-ch:
		assert.Equal(t, "fallback", v)
	case <-time.After(time.Second):
		t.Fatal("settle never delivered after panic")
	}
}

func TestAnalyzeInvalidURL(t *testing.T) {
	engine := NewEngine(signals.NewClient())

	_, err := engine.Analyze(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAnalysisFailed)

	_, err = engine.Analyze(context.Background(), "://notaurl")
	assert.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestAnalyzeHomepageUnreachableIsFatal(t *testing.T) {
	engine := NewEngine(signals.NewClient())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := engine.Analyze(ctx, "https://127.0.0.1:1")
	require.Error(t, err, "the homepage fetch is the one fatal failure mode")
	assert.ErrorIs(t, err, ErrAnalysisFailed)
}
