package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCapture(t *testing.T) {
	okBefore := testutil.ToFloat64(capturesTotal.WithLabelValues(OutcomeSuccess))
	failBefore := testutil.ToFloat64(capturesTotal.WithLabelValues(OutcomeFailure))

	RecordCapture(true, 2048)
	RecordCapture(false, 0)
	RecordCapture(false, 0)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(capturesTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, failBefore+2, testutil.ToFloat64(capturesTotal.WithLabelValues(OutcomeFailure)))
}

func TestRecordSave_ByExtension(t *testing.T) {
	before := testutil.ToFloat64(savesTotal.WithLabelValues(OutcomeSuccess, "png"))
	RecordSave(true, "png")
	assert.Equal(t, before+1, testutil.ToFloat64(savesTotal.WithLabelValues(OutcomeSuccess, "png")))
}

func TestRecordGreeting(t *testing.T) {
	before := testutil.ToFloat64(greetingsTotal)
	RecordGreeting()
	assert.Equal(t, before+1, testutil.ToFloat64(greetingsTotal))
}
