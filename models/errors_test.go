package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScrapeError_WrapsCause(t *testing.T) {
	cause := errors.New("net::ERR_CONNECTION_REFUSED")
	err := NewScrapeError(ErrCodeNavigation, "navigation to quote page failed", cause)

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), ErrCodeNavigation)
	require.Contains(t, err.Error(), cause.Error())
}

func TestScrapeError_NoCause(t *testing.T) {
	err := NewScrapeError(ErrCodeBrowserCrash, "failed to launch browser", nil)
	require.Equal(t, "BROWSER_CRASH: failed to launch browser", err.Error())
	require.Nil(t, err.Unwrap())
}

func TestNewSnapshot_Sentinels(t *testing.T) {
	snap := NewSnapshot("AAPL")

	require.Equal(t, "AAPL", snap.Symbol)
	require.Equal(t, SourceYahoo, snap.Source)
	for _, v := range []string{snap.Price, snap.Change, snap.PercentChange, snap.PreviousClose, snap.Open, snap.Volume} {
		require.Equal(t, Sentinel, v)
	}
	require.NotEmpty(t, snap.Timestamp)
}
