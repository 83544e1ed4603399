package encio_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"github.com/rs/zerolog"

	"github.com/stewi1014/pvdata/encio"
)

func TestLogRequester(t *testing.T) {
	testCases := []struct {
		messageType encio.MessageType
		level       string
	}{
		{encio.InfoMessage, "info"},
		{encio.WarningMessage, "warn"},
		{encio.ErrorMessage, "error"},
		{encio.FatalMessage, "fatal"},
	}
	for _, tC := range testCases {
		t.Run(tC.messageType.String(), func(t *testing.T) {
			out := new(bytes.Buffer)
			r := encio.NewLogRequester("record.value", zerolog.New(out))

			r.Message("field is immutable", tC.messageType)

			var entry map[string]interface{}
			if err := json.Unmarshal(out.Bytes(), &entry); err != nil {
				t.Fatal(err)
			}

			td.Cmp(t, entry, td.SuperMapOf(map[string]interface{}{
				"level":     tC.level,
				"requester": "record.value",
				"type":      tC.messageType.String(),
				"message":   "field is immutable",
			}, nil))
			td.Cmp(t, r.RequesterName(), "record.value")
		})
	}
}
