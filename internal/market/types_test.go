package market

import (
	"encoding/json"
	"testing"
)

func TestPricePoint_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PricePoint
		wantErr bool
	}{
		{"string volume", `["Mar 07 2014 01: +0", 0.527, "12"]`, PricePoint{"Mar 07 2014 01: +0", 0.527, "12"}, false},
		{"numeric volume", `["Mar 07 2014 01: +0", 1.5, 7]`, PricePoint{"Mar 07 2014 01: +0", 1.5, "7"}, false},
		{"wrong arity", `["Mar 07 2014 01: +0", 1.5]`, PricePoint{}, true},
		{"not an array", `{"date": "x"}`, PricePoint{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got PricePoint
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Unmarshal() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPricePoint_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(PricePoint{Date: "Mar 07 2014 01: +0", Price: 0.5, Volume: "3"})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(out), `["Mar 07 2014 01: +0",0.5,"3"]`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}

func TestOrderLevel_UnmarshalJSON(t *testing.T) {
	var levels []OrderLevel
	input := `[[2.3, 12, "12 buy orders at 2.30€ or higher"], [2.29, "40", "40 buy orders at 2.29€ or higher"]]`
	if err := json.Unmarshal([]byte(input), &levels); err != nil {
		t.Fatalf("Unmarshal() returned unexpected error: %v", err)
	}

	if len(levels) != 2 || levels[0].Quantity != 12 || levels[1].Quantity != 40 || levels[1].Price != 2.29 {
		t.Errorf("levels = %+v", levels)
	}
}

func TestDecodeAssets(t *testing.T) {
	for _, empty := range []string{"", "[]", "null", " [] "} {
		tree, err := decodeAssets(json.RawMessage(empty))
		if err != nil || len(tree) != 0 {
			t.Errorf("decodeAssets(%q) = (%v, %v), want empty tree", empty, tree, err)
		}
	}

	tree, err := decodeAssets(json.RawMessage(`{"440": {"2": {"99": {"classid": "1"}}}}`))
	if err != nil {
		t.Fatal(err)
	}
	if tree["440"]["2"]["99"] == nil {
		t.Errorf("tree = %v, missing 440/2/99", tree)
	}

	if _, err := decodeAssets(json.RawMessage(`"nope"`)); err == nil {
		t.Error("decodeAssets() expected error for a string, got nil")
	}
}
