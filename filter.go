package bloomd

import (
	"strconv"
	"strings"
)

// FilterInfo describes one filter on the server, as reported by list or
// info. It is allocated fresh by the decoder for every response and handed
// to callers by value (via pointer) — the client keeps no reference to it.
type FilterInfo struct {
	Name        string
	Probability float64
	Storage     uint64
	Capacity    uint64
	Size        uint64

	Checks      uint64
	CheckHits   uint64
	CheckMisses uint64
	Sets        uint64
	SetHits     uint64
	SetMisses   uint64
	PageIns     uint64
	PageOuts    uint64

	// Extra holds any wire keys from an info block that the schema above
	// doesn't recognize, keyed by their original snake_case name.
	Extra map[string]string
}

// parseFilterSummary parses one "list" block line:
// "name probability storage capacity size".
func parseFilterSummary(line string) (*FilterInfo, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return nil, unexpectedServerError(line)
	}

	prob, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, unexpectedServerError(line)
	}
	storage, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return nil, unexpectedServerError(line)
	}
	capacity, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return nil, unexpectedServerError(line)
	}
	size, err := strconv.ParseUint(fields[4], 10, 64)
	if err != nil {
		return nil, unexpectedServerError(line)
	}

	return &FilterInfo{
		Name:        fields[0],
		Probability: prob,
		Storage:     storage,
		Capacity:    capacity,
		Size:        size,
	}, nil
}

// assignInfoField parses one "info" block line, "snake_case_key value", and
// assigns it onto fi. Unknown keys are accepted and stashed in fi.Extra
// rather than rejected, per §4.B. A numeric field that fails to parse, or a
// line that isn't exactly "key value", produces a decode error rather than
// silently leaving the field at zero — the same contract parseFilterSummary
// already honors for list lines.
func assignInfoField(fi *FilterInfo, line string) error {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return unexpectedServerError(line)
	}
	key, value := fields[0], fields[1]

	var err error
	switch key {
	case "capacity":
		fi.Capacity, err = strconv.ParseUint(value, 10, 64)
	case "checks":
		fi.Checks, err = strconv.ParseUint(value, 10, 64)
	case "check_hits":
		fi.CheckHits, err = strconv.ParseUint(value, 10, 64)
	case "check_misses":
		fi.CheckMisses, err = strconv.ParseUint(value, 10, 64)
	case "page_ins":
		fi.PageIns, err = strconv.ParseUint(value, 10, 64)
	case "page_outs":
		fi.PageOuts, err = strconv.ParseUint(value, 10, 64)
	case "probability":
		fi.Probability, err = strconv.ParseFloat(value, 64)
	case "sets":
		fi.Sets, err = strconv.ParseUint(value, 10, 64)
	case "set_hits":
		fi.SetHits, err = strconv.ParseUint(value, 10, 64)
	case "set_misses":
		fi.SetMisses, err = strconv.ParseUint(value, 10, 64)
	case "size":
		fi.Size, err = strconv.ParseUint(value, 10, 64)
	case "storage":
		fi.Storage, err = strconv.ParseUint(value, 10, 64)
	default:
		if fi.Extra == nil {
			fi.Extra = make(map[string]string)
		}
		fi.Extra[key] = value
		return nil
	}
	if err != nil {
		return unexpectedServerError(line)
	}
	return nil
}
