package requests

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AkhmadOnline/transport-catalogue/internal/catalogue"
	"github.com/AkhmadOnline/transport-catalogue/internal/geo"
)

var ErrMalformedLine = errors.New("malformed line")

// Command is one parsed line of the text format: "<Kind> <ID>: <Description>".
type Command struct {
	Kind        string
	ID          string
	Description string
}

// ParseCommand splits a text input line. ok is false when the line has no
// kind, id or colon.
func ParseCommand(line string) (Command, bool) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return Command{}, false
	}
	head := strings.TrimSpace(line[:colon])
	space := strings.IndexByte(head, ' ')
	if space < 0 {
		return Command{}, false
	}
	id := strings.TrimSpace(head[space+1:])
	if id == "" {
		return Command{}, false
	}
	return Command{
		Kind:        head[:space],
		ID:          id,
		Description: strings.TrimSpace(line[colon+1:]),
	}, true
}

type textStop struct {
	name      string
	coords    geo.Coordinates
	distances []textDistance
}

type textDistance struct {
	to     string
	meters int
}

// parseStopDescription reads "lat, lng[, Dm to Name]...".
func parseStopDescription(name, description string) (textStop, error) {
	parts := strings.Split(description, ",")
	if len(parts) < 2 {
		return textStop{}, fmt.Errorf("stop %q: coordinates: %w", name, ErrMalformedLine)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return textStop{}, fmt.Errorf("stop %q: latitude: %w", name, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return textStop{}, fmt.Errorf("stop %q: longitude: %w", name, err)
	}

	stop := textStop{name: name, coords: geo.Coordinates{Lat: lat, Lng: lng}}
	for _, part := range parts[2:] {
		part = strings.TrimSpace(part)
		meters, to, found := strings.Cut(part, "m to ")
		if !found {
			return textStop{}, fmt.Errorf("stop %q: distance %q: %w", name, part, ErrMalformedLine)
		}
		value, err := strconv.Atoi(strings.TrimSpace(meters))
		if err != nil {
			return textStop{}, fmt.Errorf("stop %q: distance %q: %w", name, part, err)
		}
		stop.distances = append(stop.distances, textDistance{to: strings.TrimSpace(to), meters: value})
	}
	return stop, nil
}

// ParseRoute reads "A > B > A" as a circular route and "A - B - C" as a
// linear one. A circular route that does not end at its first stop is closed.
func ParseRoute(description string) ([]string, bool) {
	circular := strings.Contains(description, ">")
	sep := "-"
	if circular {
		sep = ">"
	}

	var stops []string
	for _, part := range strings.Split(description, sep) {
		if name := strings.TrimSpace(part); name != "" {
			stops = append(stops, name)
		}
	}

	if circular && len(stops) > 0 && stops[0] != stops[len(stops)-1] {
		stops = append(stops, stops[0])
	}
	return stops, circular
}

// ApplyCommands loads text commands into cat: stops first, then distances,
// then buses. Unknown command kinds are rejected.
func ApplyCommands(cat *catalogue.Catalogue, commands []Command) error {
	var stops []textStop
	for _, cmd := range commands {
		switch cmd.Kind {
		case TypeStop:
			stop, err := parseStopDescription(cmd.ID, cmd.Description)
			if err != nil {
				return err
			}
			cat.AddStop(stop.name, stop.coords)
			stops = append(stops, stop)
		case TypeBus:
		default:
			return fmt.Errorf("command %q: %w", cmd.Kind, ErrUnknownRequestType)
		}
	}

	for _, stop := range stops {
		for _, d := range stop.distances {
			if err := cat.SetDistance(stop.name, d.to, d.meters); err != nil {
				return fmt.Errorf("road distance from stop %q: %w", stop.name, err)
			}
		}
	}

	for _, cmd := range commands {
		if cmd.Kind != TypeBus {
			continue
		}
		names, circular := ParseRoute(cmd.Description)
		if _, err := cat.AddBus(cmd.ID, names, circular); err != nil {
			return fmt.Errorf("bus %q: %w", cmd.ID, err)
		}
	}
	return nil
}

// WriteStat answers one "Bus N" or "Stop X" query line.
func WriteStat(w io.Writer, cat *catalogue.Catalogue, query string) error {
	kind, name, found := strings.Cut(strings.TrimSpace(query), " ")
	if !found {
		return fmt.Errorf("query %q: %w", query, ErrMalformedLine)
	}
	name = strings.TrimSpace(name)

	var err error
	switch kind {
	case TypeBus:
		info := cat.GetBusInfo(name)
		if !info.Found() {
			_, err = fmt.Fprintf(w, "Bus %s: not found\n", name)
			break
		}
		_, err = fmt.Fprintf(w, "Bus %s: %d stops on route, %d unique stops, %d route length, %.6g curvature\n",
			name, info.StopsOnRoute, info.UniqueStops, info.RouteLength, info.Curvature)

	case TypeStop:
		if _, ok := cat.FindStop(name); !ok {
			_, err = fmt.Fprintf(w, "Stop %s: not found\n", name)
			break
		}
		buses := cat.GetBusesByStop(name)
		if len(buses) == 0 {
			_, err = fmt.Fprintf(w, "Stop %s: no buses\n", name)
			break
		}
		_, err = fmt.Fprintf(w, "Stop %s: buses %s\n", name, strings.Join(buses, " "))

	default:
		return fmt.Errorf("query %q: %w", query, ErrUnknownRequestType)
	}
	return err
}

// ProcessText reads the text format from in: a count of commands, the
// commands, a count of queries, the queries. Answers go to out.
func ProcessText(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	cat, err := loadCommands(scanner)
	if err != nil {
		return err
	}

	queries, err := readCountedLines(scanner)
	if err != nil {
		return fmt.Errorf("failed to read queries: %w", err)
	}
	for _, query := range queries {
		if err := WriteStat(out, cat, query); err != nil {
			return err
		}
	}
	return nil
}

// LoadText builds a catalogue from the command block of a text document.
// Anything after the commands is ignored.
func LoadText(in io.Reader) (*catalogue.Catalogue, error) {
	return loadCommands(bufio.NewScanner(in))
}

func loadCommands(scanner *bufio.Scanner) (*catalogue.Catalogue, error) {
	commandLines, err := readCountedLines(scanner)
	if err != nil {
		return nil, fmt.Errorf("failed to read commands: %w", err)
	}
	commands := make([]Command, 0, len(commandLines))
	for _, line := range commandLines {
		cmd, ok := ParseCommand(line)
		if !ok {
			return nil, fmt.Errorf("command %q: %w", line, ErrMalformedLine)
		}
		commands = append(commands, cmd)
	}

	cat := catalogue.New()
	if err := ApplyCommands(cat, commands); err != nil {
		return nil, err
	}
	return cat, nil
}

func readCountedLines(scanner *bufio.Scanner) ([]string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	count, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("line count: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("line count %d: %w", count, ErrMalformedLine)
	}

	lines := make([]string, 0, min(count, 1024))
	for len(lines) < count && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) < count {
		return nil, fmt.Errorf("expected %d lines, got %d: %w", count, len(lines), io.ErrUnexpectedEOF)
	}
	return lines, nil
}
