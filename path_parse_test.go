package aieps

import (
	"errors"
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestParsePathData(t *testing.T) {
	var tts = []struct {
		d        string
		expected string
	}{
		{"M0 0L1 1", "M[0 0] L[1 1]"},
		{"M0 0 1 1 2 2", "M[0 0] L[1 1] L[2 2]"},
		{"m0 0 1 1", "m[0 0] l[1 1]"},
		{"M0,0h5v-5zM1-1", "M[0 0] h[5] v[-5] z[] M[1 -1]"},
		{"M.5.5.5.5", "M[0.5 0.5] L[0.5 0.5]"},
		{"M0 0a1 1 0 1110 10", "M[0 0] a[1 1 0 1 1 10 10]"},
		{"M0 0 A 2 2 30 0 1 3 3 2 2 0 1,0 4 4", "M[0 0] A[2 2 30 0 1 3 3] A[2 2 0 1 0 4 4]"},
		{"M0 0 X 1 2 L3 3", "M[0 0] X[] L[3 3]"},
		{"  ", ""},
	}
	for _, tt := range tts {
		t.Run(tt.d, func(t *testing.T) {
			cmds, err := parsePathData(tt.d)
			test.Error(t, err)
			s := []string{}
			for _, cmd := range cmds {
				s = append(s, cmd.String())
			}
			test.String(t, strings.Join(s, " "), tt.expected)
		})
	}
}

func TestParsePathDataErrors(t *testing.T) {
	var tts = []struct {
		d      string
		reason string
	}{
		{"0 0", "bad path: expected command"},
		{"M0 0 Z 1 1", "bad path: numbers after closepath"},
		{"M0 0 A1 1 0 2 0 1 1", "bad path: expected arc flag"},
		{"M0", "bad path: expected 2 numbers after M"},
		{"M0 0 C1 1 2 2", "bad path: expected 6 numbers after C"},
	}
	for _, tt := range tts {
		t.Run(tt.d, func(t *testing.T) {
			_, err := parsePathData(tt.d)
			var perr *ParseError
			test.That(t, errors.As(err, &perr))
			test.String(t, perr.Reason, tt.reason)
		})
	}
}

func runPath(t *testing.T, d string, autoClose bool) (*pathInterpreter, []error) {
	t.Helper()
	cmds, err := parsePathData(d)
	test.Error(t, err)

	alerts := []error{}
	pi := newPathInterpreter(Identity, &DefaultOptions, autoClose, func(err error) {
		alerts = append(alerts, err)
	})
	test.Error(t, pi.run(cmds))
	return pi, alerts
}

func pathAI(p Path, op string) string {
	sb := strings.Builder{}
	p.toAI(&sb, dec(6), paintOp{op: op})
	return strings.Join(strings.Fields(sb.String()), " ")
}

func TestPathInterpreter(t *testing.T) {
	var tts = []struct {
		d         string
		autoClose bool
		expected  string
	}{
		{"M0 0L10 0", false, "0 0 m 10 0 l S"},
		{"M0 0L10 0L10 10z", false, "0 0 m 10 0 l 10 10 l 0 0 l s"},
		{"M0 0L10 0L10 10L0 0.05z", false, "0 0 m 10 0 l 10 10 l 0 .05 l s"},
		{"M0 0L10 0L10 10", true, "0 0 m 10 0 l 10 10 l 0 0 l s"},
		{"M0 0L10 0L10 10z l5 5", false, "0 0 m 10 0 l 10 10 l 0 0 l s 0 0 m 5 5 l S"},
		{"M1 1L5 1L5 5z m1 1 l1 0", false, "1 1 m 5 1 l 5 5 l 1 1 l s 2 2 m 3 2 l S"},
		{"M1 1 h2 v2 H0 V0", false, "1 1 m 3 1 l 3 3 l 0 3 l 0 0 l S"},
		{"M0 0Q3 3 6 0", false, "0 0 m 2 2 4 2 6 0 c S"},
		{"M0 0C0 1 1 1 1 0S2 -1 2 0", false, "0 0 m 0 1 1 1 1 0 c 1 -1 2 -1 2 0 c S"},
		{"M0 0A0 1 0 0 1 5 5", false, "0 0 m 5 5 l S"},
	}
	for _, tt := range tts {
		t.Run(tt.d, func(t *testing.T) {
			pi, alerts := runPath(t, tt.d, tt.autoClose)
			test.T(t, len(alerts), 0)
			test.String(t, pathAI(pi.p, "s"), tt.expected)
		})
	}
}

func TestPathInterpreterStrayPoints(t *testing.T) {
	pi, alerts := runPath(t, "M0 0 M1 1 L2 2 M5 5", false)
	test.T(t, alerts, []error{ErrStrayPoint, ErrStrayPoint})
	test.T(t, pi.p.Len(), 1)
	test.String(t, pathAI(pi.p, "s"), "1 1 m 2 2 l S")

	pi, alerts = runPath(t, "M3 3", false)
	test.T(t, len(alerts), 1)
	test.That(t, pi.p.Empty())
}

func TestPathInterpreterBounds(t *testing.T) {
	pi, _ := runPath(t, "M1 2 C0 5 4 -1 3 3", false)
	test.T(t, pi.bounds, Rect{0.0, -1.0, 4.0, 6.0})

	// bounds are in user space while the path is in page space
	cmds, _ := parsePathData("M0 0 L2 1")
	pi = newPathInterpreter(Identity.Scale(2.0, 2.0), &DefaultOptions, false, func(error) {})
	test.Error(t, pi.run(cmds))
	test.T(t, pi.bounds, Rect{0.0, 0.0, 2.0, 1.0})
	test.String(t, pathAI(pi.p, "s"), "0 0 m 4 2 l S")
}

func TestPathInterpreterErrors(t *testing.T) {
	cmds, err := parsePathData("L1 1")
	test.Error(t, err)
	pi := newPathInterpreter(Identity, &DefaultOptions, false, func(error) {})
	var perr *ParseError
	test.That(t, errors.As(pi.run(cmds), &perr))
	test.String(t, perr.Reason, "bad path: expected moveto")

	pi, alerts := runPath(t, "M0 0 X 1 1 L2 2", false)
	test.T(t, len(alerts), 1)
	test.That(t, errors.Is(alerts[0], ErrUnsupported))
	test.String(t, alerts[0].Error(), "unhandled path command: X")
	test.String(t, pathAI(pi.p, "s"), "0 0 m 2 2 l S")
}
