// Package search maintains a full-text index over the message log.
// The index is advisory: losing it loses search results, never messages.
package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/blugelabs/bluge"
	"github.com/google/uuid"

	"batepapo-api/domain"
)

type Index struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func Open(path string, log *slog.Logger) (*Index, error) {
	writer, err := bluge.OpenWriter(bluge.DefaultConfig(path))
	if err != nil {
		return nil, fmt.Errorf("open bluge writer: %w", err)
	}
	return &Index{writer: writer, log: log}, nil
}

func (i *Index) Close() error {
	return i.writer.Close()
}

// Add indexes one message. All fields are stored so search results can be
// rebuilt without a second trip to the message log.
func (i *Index) Add(msg domain.Message) error {
	doc := bluge.NewDocument(msg.ID.String()).
		AddField(bluge.NewTextField("text", msg.Text).StoreValue()).
		AddField(bluge.NewKeywordField("from", msg.From).StoreValue()).
		AddField(bluge.NewKeywordField("to", msg.To).StoreValue()).
		AddField(bluge.NewKeywordField("type", string(msg.Type)).StoreValue()).
		AddField(bluge.NewKeywordField("time", msg.Time).StoreValue())
	return i.writer.Update(doc.ID(), doc)
}

// Search runs a match query against message text and returns up to max
// messages. Visibility filtering is the caller's job, so max here is only a
// ceiling on index work, not the response size.
func (i *Index) Search(ctx context.Context, query string, max int) ([]domain.Message, error) {
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("open bluge reader: %w", err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			i.log.Warn("Closing bluge reader failed", "err", err)
		}
	}()

	q := bluge.NewMatchQuery(query).SetField("text")
	iterator, err := reader.Search(ctx, bluge.NewTopNSearch(max, q))
	if err != nil {
		return nil, fmt.Errorf("bluge search: %w", err)
	}

	var messages []domain.Message
	for {
		match, err := iterator.Next()
		if err != nil {
			return nil, fmt.Errorf("bluge iterate: %w", err)
		}
		if match == nil {
			break
		}
		var msg domain.Message
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				if id, err := uuid.Parse(string(value)); err == nil {
					msg.ID = id
				}
			case "text":
				msg.Text = string(value)
			case "from":
				msg.From = string(value)
			case "to":
				msg.To = string(value)
			case "type":
				msg.Type = domain.MessageType(value)
			case "time":
				msg.Time = string(value)
			}
			return true
		})
		if err != nil {
			return nil, fmt.Errorf("bluge stored fields: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
