package puzzle

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	a, _ := alphabetForSize(2)
	samples := []Error{
		rangeError(RowAttribute, 10, 1, 9),
		symbolError('9', a),
		tokenError("12"),
		sizeError(8),
		moveError('3', 2, 1),
	}
	wants := []string{"Out of range", "Invalid character", "Not a single character",
		"Invalid size", "Illegal move"}
	for i, e := range samples {
		msg := e.Error()
		if !strings.HasPrefix(msg, wants[i]) {
			t.Errorf("Error %d message %q doesn't start with %q", i, msg, wants[i])
		}
	}
}

func TestErrorCustomMessage(t *testing.T) {
	e := Error{Kind: InvalidSizeKind, Message: "custom"}
	if e.Error() != "custom" {
		t.Errorf("Custom message not used: got %q", e.Error())
	}
}

func TestErrorUnknownKind(t *testing.T) {
	e := Error{Kind: UnknownKind, Values: ErrorData{"detail"}}
	if e.Error() == "" {
		t.Errorf("Unknown-kind error produced no message")
	}
}

func TestErrorSerializable(t *testing.T) {
	e := rangeError(ColumnAttribute, 0, 1, 16)
	bytes, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Couldn't marshal error: %v", err)
	}
	var back Error
	if err := json.Unmarshal(bytes, &back); err != nil {
		t.Fatalf("Couldn't unmarshal error: %v", err)
	}
	if back.Kind != e.Kind || back.Attribute != e.Attribute {
		t.Errorf("Round-tripped error differs: got %+v, expected %+v", back, e)
	}
}
