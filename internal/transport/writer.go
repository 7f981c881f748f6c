package transport

import (
	"fmt"
	"io"
	"math"

	"github.com/bft-labs/felfship/pkg/felf"
)

// WritePayload writes payload preceded by its 4-byte native-order length.
func WritePayload(w io.Writer, payload []byte) error {
	if uint64(len(payload)) > math.MaxUint32 {
		return fmt.Errorf("transport: payload of %d bytes exceeds length prefix", len(payload))
	}
	var b [LengthSize]byte
	felf.ByteOrder.PutUint32(b[:], uint32(len(payload)))
	if _, err := w.Write(b[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}
