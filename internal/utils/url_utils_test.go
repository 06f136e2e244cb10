package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "scheme and path with trailing period",
			text: "Visita https://banco-seguro.example/login?id=1. Gracias",
			want: []string{"https://banco-seguro.example/login?id=1"},
		},
		{
			name: "www without scheme",
			text: "Entra a www.example.com, y confirma",
			want: []string{"www.example.com"},
		},
		{
			name: "short link",
			text: "Tu paquete: bit.ly/3xYz",
			want: []string{"bit.ly/3xYz"},
		},
		{
			name: "several links in order",
			text: "Primero http://uno.example luego http://dos.example:8080/a",
			want: []string{"http://uno.example", "http://dos.example:8080/a"},
		},
		{
			name: "no link",
			text: "Este es un mensaje de prueba",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExtractURLs(tt.text))
		})
	}
}

func TestPrimaryURL(t *testing.T) {
	req := require.New(t)

	url, ok := PrimaryURL("Primero http://uno.example luego http://dos.example")
	req.True(ok)
	req.Equal("http://uno.example", url)

	url, ok = PrimaryURL("hola mundo")
	req.False(ok)
	req.Empty(url)
}
