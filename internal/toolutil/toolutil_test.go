package toolutil

import (
	"errors"
	"testing"
)

func TestRequired(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
		want   string
	}{
		{"all set", []Field{{"video_url", "u"}, {"repo", "r"}}, ""},
		{"one missing", []Field{{"video_url", "u"}, {"repo", " "}}, "repo is required"},
		{"two missing", []Field{{"video_url", ""}, {"repo", ""}}, "video_url and repo are required"},
		{"three missing", []Field{{"a", ""}, {"b", ""}, {"c", ""}}, "a, b and c are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Required(tt.fields...)
			if tt.want == "" {
				if err != nil {
					t.Errorf("Required() = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != tt.want {
				t.Fatalf("Required() = %v, want %q", err, tt.want)
			}
			if !errors.Is(err, ErrRequired) {
				t.Errorf("Required() error does not wrap ErrRequired")
			}
		})
	}
}
