package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRequestsTotal(t *testing.T) {
	c := RequestsTotal.WithLabelValues("test_op", OutcomeSuccess)
	before := testutil.ToFloat64(c)

	c.Inc()

	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("requests_total = %v, want %v", got, before+1)
	}
}

func TestImageResolutionsTotal(t *testing.T) {
	for _, path := range []string{ImagePathCDN, ImagePathScrape, ImagePathNone} {
		c := ImageResolutionsTotal.WithLabelValues(path)
		before := testutil.ToFloat64(c)
		c.Inc()
		if got := testutil.ToFloat64(c); got != before+1 {
			t.Errorf("image_resolutions_total{path=%q} = %v, want %v", path, got, before+1)
		}
	}
}
