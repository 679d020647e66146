package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jmcastano/Kardex-api/internal/domain/catalog"
)

func TestSearchKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Tornillería Única", "tornilleria unica"},
		{"  Lámina   Galvanizada  ", "lamina galvanizada"},
		{"ACERO 1045", "acero 1045"},
		{"", ""},
		{"Ñandú", "nandu"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, catalog.SearchKey(tc.in), "input: %q", tc.in)
	}
}
