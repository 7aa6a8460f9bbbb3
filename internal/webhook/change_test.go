package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectChange(t *testing.T) {
	base := Snapshot{Number: "SW1001", InStock: 10, Price: 19.99, LastStock: false}

	tests := []struct {
		name    string
		after   Snapshot
		changed bool
	}{
		{"identical", base, false},
		{"stock changed", Snapshot{Number: "SW1001", InStock: 9, Price: 19.99}, true},
		{"price changed", Snapshot{Number: "SW1001", InStock: 10, Price: 18.99}, true},
		{"last stock toggled", Snapshot{Number: "SW1001", InStock: 10, Price: 19.99, LastStock: true}, true},
		{"sub-cent price noise ignored", Snapshot{Number: "SW1001", InStock: 10, Price: 19.990000000001}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := DetectChange(base, tt.after)
			assert.Equal(t, tt.changed, decision.Changed)
			assert.Equal(t, "SW1001", decision.Number)
		})
	}
}

func TestDetectChangeCarriesAfterNumber(t *testing.T) {
	decision := DetectChange(
		Snapshot{Number: "SW1001", InStock: 1},
		Snapshot{Number: "SW1001.2", InStock: 1},
	)
	assert.Equal(t, "SW1001.2", decision.Number)
}
