package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestFlexStringsUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want FlexStrings
	}{
		{"json array", `["kilo-verme","vegan"]`, FlexStrings{"kilo-verme", "vegan"}},
		{"encoded array string", `"[\"kilo-verme\",\"vegan\"]"`, FlexStrings{"kilo-verme", "vegan"}},
		{"comma fallback", `"kilo-verme, vegan , "`, FlexStrings{"kilo-verme", "vegan"}},
		{"single plain string", `"vegan"`, FlexStrings{"vegan"}},
		{"null", `null`, nil},
		{"empty string", `""`, nil},
		{"empty array", `[]`, FlexStrings{}},
		{"non-string payload ignored", `{"a":1}`, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got FlexStrings
			if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestFlexStringsJSONString(t *testing.T) {
	if got := (FlexStrings)(nil).JSONString(); got != "[]" {
		t.Errorf("nil JSONString = %q, want []", got)
	}
	if got := (FlexStrings{"a", "b"}).JSONString(); got != `["a","b"]` {
		t.Errorf("JSONString = %q", got)
	}
}

func TestFlexStringsRoundTrip(t *testing.T) {
	in := FlexStrings{"düşük-karbonhidrat", "sporcu"}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out FlexStrings
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip: got %#v, want %#v", out, in)
	}
}
