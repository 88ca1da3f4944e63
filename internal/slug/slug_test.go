package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "Baby Dragon Care", "baby-dragon-care"},
		{"already lowercase", "dragons", "dragons"},
		{"punctuation collapses", "Hello, World!", "hello-world"},
		{"leading and trailing junk", "  --Feeding Time--  ", "feeding-time"},
		{"digits survive", "Top 10 Lizards", "top-10-lizards"},
		{"consecutive separators", "a  b\t\tc", "a-b-c"},
		{"empty title", "", ""},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.title))
		})
	}
}

func TestMakeDeterministic(t *testing.T) {
	// Two titles that collapse to the same slug must produce identical
	// output so the store's primary key catches the collision.
	assert.Equal(t, Make("Baby Dragon Care"), Make("baby dragon care!"))
}
