package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/venue-cli/internal/finder"
)

// findInput is the validated user input for a find run.
type findInput struct {
	Request finder.Request
	Output  string
}

// prompter reads answers line by line, asking only for values that were
// not supplied up front.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) ask(question, preset string) (string, error) {
	if preset != "" {
		return strings.TrimSpace(preset), nil
	}
	_, _ = fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", eris.Wrap(err, "read input")
	}
	return strings.TrimSpace(line), nil
}

// collect gathers address, radius and output filename in that order. Each
// answer is validated as soon as it is read so a bad address stops the
// prompt before the radius is asked for.
func (p *prompter) collect(address, radius, output string) (findInput, error) {
	addr, err := p.ask("Enter the address: ", address)
	if err != nil {
		return findInput{}, err
	}
	if addr == "" {
		return findInput{}, eris.Wrap(finder.ErrInvalidInput, "address is required")
	}

	rad, err := p.ask("Enter the search radius in meters (e.g., 1000): ", radius)
	if err != nil {
		return findInput{}, err
	}
	req, err := finder.ParseRequest(addr, rad)
	if err != nil {
		return findInput{}, err
	}

	name, err := p.ask("Enter the Excel filename (e.g., 'restaurants'; .xlsx is added unless already present): ", output)
	if err != nil {
		return findInput{}, err
	}
	name, err = finder.ValidateOutput(name)
	if err != nil {
		return findInput{}, err
	}

	return findInput{Request: req, Output: finder.OutputPath(name)}, nil
}
