package graph

import (
	"testing"

	"spreadscope/internal/shared/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestBuild_CountsRecordOutcomes(t *testing.T) {
	accepted := observability.IngestRecordsTotal.WithLabelValues("accepted")
	rejected := observability.IngestRecordsTotal.WithLabelValues("rejected")
	beforeAccepted := testutil.ToFloat64(accepted)
	beforeRejected := testutil.ToFloat64(rejected)

	Build([]Record{{"a", "b"}, {"a"}, {"b", "c", "-3"}, {"c", "a", "2"}})

	if got := testutil.ToFloat64(accepted) - beforeAccepted; got != 2 {
		t.Errorf("accepted delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(rejected) - beforeRejected; got != 2 {
		t.Errorf("rejected delta = %v, want 2", got)
	}
}
