package requests

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkhmadOnline/transport-catalogue/internal/catalogue"
)

const textInput = `13
Stop Tolstopaltsevo: 55.611087, 37.20829, 3900m to Marushkino
Stop Marushkino: 55.595884, 37.209755, 9900m to Rasskazovka, 100m to Marushkino
Bus 256: Biryulyovo Zapadnoye > Biryusinka > Universam > Biryulyovo Tovarnaya > Biryulyovo Passazhirskaya > Biryulyovo Zapadnoye
Bus 750: Tolstopaltsevo - Marushkino - Marushkino - Rasskazovka
Stop Rasskazovka: 55.632761, 37.333324, 9500m to Marushkino
Stop Biryulyovo Zapadnoye: 55.574371, 37.6517, 7500m to Rossoshanskaya ulitsa, 1800m to Biryusinka, 2400m to Universam
Stop Biryusinka: 55.581065, 37.64839, 750m to Universam
Stop Universam: 55.587655, 37.645687, 5600m to Rossoshanskaya ulitsa, 900m to Biryulyovo Tovarnaya
Stop Biryulyovo Tovarnaya: 55.592028, 37.653656, 1300m to Biryulyovo Passazhirskaya
Stop Biryulyovo Passazhirskaya: 55.580999, 37.659164, 1200m to Biryulyovo Zapadnoye
Bus 828: Biryulyovo Zapadnoye > Universam > Rossoshanskaya ulitsa > Biryulyovo Zapadnoye
Stop Rossoshanskaya ulitsa: 55.595579, 37.605757
Stop Prazhskaya: 55.611678, 37.603831
6
Bus 256
Bus 750
Bus 751
Stop Samara
Stop Prazhskaya
Stop Biryulyovo Zapadnoye
`

func TestProcessText(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, ProcessText(strings.NewReader(textInput), &out))

	expected := `Bus 256: 6 stops on route, 5 unique stops, 5950 route length, 1.36124 curvature
Bus 750: 7 stops on route, 3 unique stops, 27400 route length, 1.30853 curvature
Bus 751: not found
Stop Samara: not found
Stop Prazhskaya: no buses
Stop Biryulyovo Zapadnoye: buses 256 828
`
	assert.Equal(t, expected, out.String())
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line     string
		expected Command
		ok       bool
	}{
		{"Stop Tolstopaltsevo: 55.611087, 37.20829", Command{Kind: "Stop", ID: "Tolstopaltsevo", Description: "55.611087, 37.20829"}, true},
		{"  Bus 256 :  A > B", Command{Kind: "Bus", ID: "256", Description: "A > B"}, true},
		{"Stop Biryulyovo Zapadnoye: 1, 2", Command{Kind: "Stop", ID: "Biryulyovo Zapadnoye", Description: "1, 2"}, true},
		{"Bus 256", Command{}, false},
		{"Bus: A > B", Command{}, false},
		{"Stop : 1, 2", Command{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, ok := ParseCommand(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, cmd)
		})
	}
}

func TestParseRoute(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		stops    []string
		circular bool
	}{
		{"circular closed", "A > B > A", []string{"A", "B", "A"}, true},
		{"circular closed implicitly", "A > B > C", []string{"A", "B", "C", "A"}, true},
		{"linear", "A - B - C", []string{"A", "B", "C"}, false},
		{"names with spaces", "Big Stop - Small Stop", []string{"Big Stop", "Small Stop"}, false},
		{"single stop", "Lonely", []string{"Lonely"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stops, circular := ParseRoute(tt.input)
			assert.Equal(t, tt.stops, stops)
			assert.Equal(t, tt.circular, circular)
		})
	}
}

func TestApplyCommandsErrors(t *testing.T) {
	tests := []struct {
		name     string
		commands []Command
		is       error
	}{
		{
			name:     "bus with unknown stop",
			commands: []Command{{Kind: "Bus", ID: "1", Description: "A - B"}},
			is:       catalogue.ErrUnknownStop,
		},
		{
			name:     "distance to unknown stop",
			commands: []Command{{Kind: "Stop", ID: "A", Description: "1, 2, 100m to X"}},
			is:       catalogue.ErrUnknownStop,
		},
		{
			name:     "malformed distance",
			commands: []Command{{Kind: "Stop", ID: "A", Description: "1, 2, far away"}},
			is:       ErrMalformedLine,
		},
		{
			name:     "missing longitude",
			commands: []Command{{Kind: "Stop", ID: "A", Description: "1"}},
			is:       ErrMalformedLine,
		},
		{
			name:     "unknown kind",
			commands: []Command{{Kind: "Tram", ID: "T", Description: "A - B"}},
			is:       ErrUnknownRequestType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ApplyCommands(catalogue.New(), tt.commands)
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestProcessTextTruncatedInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{name: "fewer lines than counted", input: "3\nStop A: 1, 2\n", expected: io.ErrUnexpectedEOF},
		{name: "negative count", input: "-1\n", expected: ErrMalformedLine},
		{name: "negative stat count", input: "0\n-5\n", expected: ErrMalformedLine},
		{name: "huge count", input: "9223372036854775807\nStop A: 1, 2\n", expected: io.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.NotPanics(t, func() {
				err := ProcessText(strings.NewReader(tt.input), &out)
				assert.ErrorIs(t, err, tt.expected)
			})
		})
	}
}

func TestWriteStatUnknownQuery(t *testing.T) {
	var out bytes.Buffer
	err := WriteStat(&out, catalogue.New(), "Route A")
	assert.ErrorIs(t, err, ErrUnknownRequestType)

	err = WriteStat(&out, catalogue.New(), "Bus")
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestLoadText(t *testing.T) {
	cat, err := LoadText(strings.NewReader(textInput))
	require.NoError(t, err)

	stats := cat.Stats()
	assert.Equal(t, 10, stats.Stops)
	assert.Equal(t, 3, stats.Buses)
	assert.Equal(t, []string{"256", "828"}, cat.GetBusesByStop("Biryulyovo Zapadnoye"))

	_, err = LoadText(strings.NewReader("1\nStop A 1, 2\n"))
	assert.ErrorIs(t, err, ErrMalformedLine)
}
