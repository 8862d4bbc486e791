package storage

import (
	"encoding/json"
	"fmt"

	"github.com/yourname/timebalance/internal"
)

func encodeDocument(doc *internal.UserDocument) ([]byte, error) {
	if doc == nil {
		doc = internal.NewUserDocument()
	}
	return json.Marshal(doc)
}

func decodeDocument(data []byte) (*internal.UserDocument, error) {
	var doc internal.UserDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	doc.Normalize()
	return &doc, nil
}
