package lexer

import (
	"errors"
	"strconv"
	"strings"

	"github.com/oarkflow/ledgerlex/ast"
)

var errInvalidDate = errors.New("invalid date")

// scanDate parses a date word already normalized of its auxiliary-date
// suffix. "-" and "." separators are folded to "/" before splitting;
// three parts give a full date, two give a partial (month/day) date.
// Month and day are range-checked here (February tolerated up to 29
// days, matching ast.DaysInMonth) so that an out-of-range date is
// reported as a LexError at the point it is lexed rather than surfacing
// later as a construction error.
func scanDate(text string) (ast.Date, error) {
	normalized := strings.NewReplacer("-", "/", ".", "/").Replace(text)
	parts := strings.Split(normalized, "/")

	switch len(parts) {
	case 3:
		year, err1 := strconv.Atoi(parts[0])
		month, err2 := strconv.Atoi(parts[1])
		day, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || !validMonthDay(month, day) {
			return ast.Date{}, errInvalidDate
		}
		return ast.Date{Year: year, Month: month, Day: day}, nil
	case 2:
		month, err1 := strconv.Atoi(parts[0])
		day, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || !validMonthDay(month, day) {
			return ast.Date{}, errInvalidDate
		}
		return ast.Date{Month: month, Day: day, Partial: true}, nil
	default:
		return ast.Date{}, errInvalidDate
	}
}

func validMonthDay(month, day int) bool {
	dim := ast.DaysInMonth(month)
	if dim == 0 {
		return false
	}
	return day >= 1 && day <= dim
}
