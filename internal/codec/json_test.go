package codec

import (
	"encoding/json"
	"testing"

	"github.com/go-kratos/kratos/v2/encoding"
	grpcencoding "google.golang.org/grpc/encoding"
)

func TestRegistered(t *testing.T) {
	if c := encoding.GetCodec(Name); c == nil || c.Name() != Name {
		t.Errorf("kratos codec = %v", c)
	}
	if _, ok := grpcencoding.GetCodec(Name).(jsonCodec); !ok {
		t.Errorf("grpc codec = %v, want jsonCodec", grpcencoding.GetCodec(Name))
	}
}

func TestUnmarshalLenient(t *testing.T) {
	var v struct {
		Profile map[string]any `json:"profile"`
	}
	data := []byte(`{
		// cached by energy-tools
		"profile": {"Product Type": 1, "Memory Size": 8.5,},
	}`)
	if err := (jsonCodec{}).Unmarshal(data, &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if n, ok := v.Profile["Product Type"].(json.Number); !ok || n.String() != "1" {
		t.Errorf("Product Type = %#v, want json.Number 1", v.Profile["Product Type"])
	}
}

func TestMarshal(t *testing.T) {
	got, err := (jsonCodec{}).Marshal(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("Marshal = %s", got)
	}
}
