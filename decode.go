package bloomd

import "strings"

// decodeFrame converts frame into the value cmd.ExpectedType promises,
// using the rules in §4.B. If cmd.overrideError is set, it is returned
// directly and the frame's actual content is ignored — the frame is still
// considered consumed by the caller, preserving FIFO queue accounting.
func decodeFrame(cmd *Command, frame Frame) (interface{}, error) {
	if cmd.overrideError != nil {
		return nil, cmd.overrideError
	}

	switch cmd.ExpectedType {
	case RespBool:
		return decodeBool(frame)
	case RespBoolList:
		return decodeBoolList(cmd, frame)
	case RespConfirmation:
		return decodeConfirmation(frame)
	case RespCreateConfirmation:
		return decodeCreateConfirmation(frame)
	case RespDropConfirmation:
		return decodeDropConfirmation(frame)
	case RespFilterList:
		return decodeFilterList(frame)
	case RespInfo:
		return decodeInfo(frame, cmd.FilterName)
	default:
		return nil, unexpectedServerError(frame.Line)
	}
}

func decodeBool(frame Frame) (interface{}, error) {
	if frame.Kind != FrameSingle {
		return nil, errUnexpectedFrame
	}
	switch frame.Line {
	case "Yes":
		return true, nil
	case "No":
		return false, nil
	default:
		return nil, ServerError(frame.Line)
	}
}

func decodeBoolList(cmd *Command, frame Frame) (interface{}, error) {
	if frame.Kind != FrameSingle {
		return nil, errUnexpectedFrame
	}
	tokens := strings.Fields(frame.Line)
	if len(tokens) != len(cmd.Keys) {
		return nil, ServerError(frame.Line)
	}

	result := make(map[string]bool, len(tokens))
	for i, tok := range tokens {
		switch tok {
		case "Yes":
			result[cmd.Keys[i]] = true
		case "No":
			result[cmd.Keys[i]] = false
		default:
			return nil, ServerError(frame.Line)
		}
	}
	return result, nil
}

func decodeConfirmation(frame Frame) (interface{}, error) {
	if frame.Kind != FrameSingle {
		return nil, errUnexpectedFrame
	}
	if frame.Line == "Done" {
		return true, nil
	}
	return nil, ServerError(frame.Line)
}

func decodeCreateConfirmation(frame Frame) (interface{}, error) {
	if frame.Kind != FrameSingle {
		return nil, errUnexpectedFrame
	}
	switch frame.Line {
	case "Done", "Exists":
		return true, nil
	default:
		return nil, ServerError(frame.Line)
	}
}

func decodeDropConfirmation(frame Frame) (interface{}, error) {
	if frame.Kind != FrameSingle {
		return nil, errUnexpectedFrame
	}
	switch frame.Line {
	case "Done", filterMissingText:
		return true, nil
	default:
		return nil, ServerError(frame.Line)
	}
}

func decodeFilterList(frame Frame) (interface{}, error) {
	if frame.Kind != FrameBlock {
		return nil, errUnexpectedFrame
	}
	list := make([]*FilterInfo, 0, len(frame.Lines))
	for _, line := range frame.Lines {
		fi, err := parseFilterSummary(line)
		if err != nil {
			return nil, err
		}
		list = append(list, fi)
	}
	return list, nil
}

// decodeInfo builds one FilterInfo from an info block. The block carries no
// name line, so Name is taken from the command's filter name.
func decodeInfo(frame Frame, name string) (interface{}, error) {
	if frame.Kind != FrameBlock {
		return nil, errUnexpectedFrame
	}
	fi := &FilterInfo{Name: name}
	for _, line := range frame.Lines {
		if err := assignInfoField(fi, line); err != nil {
			return nil, err
		}
	}
	return fi, nil
}
