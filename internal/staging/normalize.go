package staging

import (
	"strconv"
	"strings"
)

// Normalize canonicalizes raw T, N, and M tokens into an Input.
//
// Tokens are matched case-insensitively and the axis letter prefix is
// optional ("t3", "T3", and "3" are equivalent). An empty token or an
// explicit "x" means the axis was not assessed; that state is preserved,
// never coerced to the corresponding "0" code. Sub-stage letters are kept
// exactly as supplied — a bare T4 or M1 is never upgraded to a sub-stage.
//
// A token that matches no code for its axis, or a code the edition does not
// define (N1c and M1c under edition 7), returns an *InvalidCodeError.
// Normalize never substitutes a default.
func Normalize(t, n, m string, ed Edition) (Input, error) {
	if !ed.Valid() {
		return Input{}, &InvalidCodeError{
			Axis:    "edition",
			Token:   strconv.Itoa(int(ed)),
			Edition: ed,
			Reason:  "unsupported AJCC edition (want 7 or 8)",
		}
	}

	tc, err := parseT(t)
	if err != nil {
		return Input{}, err
	}
	nc, err := parseN(n, ed)
	if err != nil {
		return Input{}, err
	}
	mc, err := parseM(m, ed)
	if err != nil {
		return Input{}, err
	}

	return Input{T: tc, N: nc, M: mc, Edition: ed}, nil
}

// canonToken lowercases a raw token and strips the axis letter if present.
func canonToken(raw, axis string) string {
	tok := strings.ToLower(strings.TrimSpace(raw))
	return strings.TrimPrefix(tok, axis)
}

func parseT(raw string) (TCode, error) {
	switch canonToken(raw, "t") {
	case "", "x":
		return TX, nil
	case "0":
		return T0, nil
	case "is":
		return Tis, nil
	case "1":
		return T1, nil
	case "2":
		return T2, nil
	case "3":
		return T3, nil
	case "4":
		return T4, nil
	case "4a":
		return T4a, nil
	case "4b":
		return T4b, nil
	}
	return TX, &InvalidCodeError{Axis: "T", Token: raw, Reason: "not a recognized T code"}
}

func parseN(raw string, ed Edition) (NCode, error) {
	switch canonToken(raw, "n") {
	case "", "x":
		return NX, nil
	case "0":
		return N0, nil
	case "1":
		return N1, nil
	case "1a":
		return N1a, nil
	case "1b":
		return N1b, nil
	case "1c":
		if ed == Edition7 {
			return NX, &InvalidCodeError{Axis: "N", Token: raw, Edition: ed, Reason: "N1c is not defined in the 7th edition"}
		}
		return N1c, nil
	case "2":
		return N2, nil
	case "2a":
		return N2a, nil
	case "2b":
		return N2b, nil
	}
	return NX, &InvalidCodeError{Axis: "N", Token: raw, Edition: ed, Reason: "not a recognized N code"}
}

func parseM(raw string, ed Edition) (MCode, error) {
	switch canonToken(raw, "m") {
	case "", "x":
		return MX, nil
	case "0":
		return M0, nil
	case "1":
		return M1, nil
	case "1a":
		return M1a, nil
	case "1b":
		return M1b, nil
	case "1c":
		if ed == Edition7 {
			return MX, &InvalidCodeError{Axis: "M", Token: raw, Edition: ed, Reason: "M1c is not defined in the 7th edition"}
		}
		return M1c, nil
	}
	return MX, &InvalidCodeError{Axis: "M", Token: raw, Edition: ed, Reason: "not a recognized M code"}
}
