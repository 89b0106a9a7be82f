package prefabs

import (
	"image/color"
	"testing"
)

func TestLoadEmbeddedSpecs(t *testing.T) {
	agent, err := LoadAgentSpec()
	if err != nil {
		t.Fatalf("agent: %v", err)
	}
	if agent.Speed <= 0 || agent.TurnRate <= 0 {
		t.Fatalf("expected positive tuning, got %+v", agent)
	}
	if agent.Collider.Radius <= 0 {
		t.Fatalf("expected a collider radius")
	}

	coin, err := LoadCoinSpec()
	if err != nil {
		t.Fatalf("coin: %v", err)
	}
	if coin.Tag != agent.Tag {
		t.Fatalf("coin tag %q does not match agent tag %q", coin.Tag, agent.Tag)
	}

	if _, err := LoadScript(agent.Script); err != nil {
		t.Fatalf("script: %v", err)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#ff0080", color.NRGBA{R: 255, B: 128, A: 255}, false},
		{"10203040", color.NRGBA{R: 16, G: 32, B: 48, A: 64}, false},
		{"#fff", color.NRGBA{}, true},
		{"#zz0000", color.NRGBA{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseHexColor(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestYAMLColorFallback(t *testing.T) {
	var c *YAMLColor
	if got := c.Or(color.White); got != color.White {
		t.Fatalf("expected fallback, got %v", got)
	}
}

func TestScriptPathCleaning(t *testing.T) {
	for _, in := range []string{"x.tengo", "scripts/x.tengo", "prefabs/scripts/x.tengo"} {
		if got := cleanScriptPath(in); got != "scripts/x.tengo" {
			t.Fatalf("%s: got %s", in, got)
		}
	}
}

func TestParseAgentSpecDefaults(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		wantSpeed float64
		wantTurn  float64
	}{
		{"missing_keys_use_defaults", "name: a\n", 5, 5},
		{"explicit_zero_is_kept", "speed: 0\nturn_rate: 0\n", 0, 0},
		{"values_override", "speed: 12.5\nturn_rate: 3\n", 12.5, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := ParseAgentSpec([]byte(tc.yaml))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if spec.Speed != tc.wantSpeed || spec.TurnRate != tc.wantTurn {
				t.Fatalf("expected speed %v turn %v, got %v %v", tc.wantSpeed, tc.wantTurn, spec.Speed, spec.TurnRate)
			}
			if spec.Tag != "Coin" || spec.AlignDegrees != 1 {
				t.Fatalf("expected default tag and alignment, got %q %v", spec.Tag, spec.AlignDegrees)
			}
		})
	}
}
