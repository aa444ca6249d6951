// Package tags writes ID3v2 metadata into downloaded songs.
package tags

import (
	"fmt"

	"github.com/bogem/id3v2"

	"github.com/ytget/nong-manager/internal/model"
)

// ID3 frame settings
const (
	TagVersion         = 3
	CommentLanguage    = "eng"
	CommentDescription = "NoNG state"
)

// Write stores the record's song name, level name and state in the file's ID3 tag
func Write(path string, record model.Record) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("id3 open error: %w", err)
	}
	defer tag.Close()

	tag.SetVersion(TagVersion)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(record.SongName)
	tag.SetAlbum(record.LevelName)

	if record.State != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    CommentLanguage,
			Description: CommentDescription,
			Text:        record.State,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("id3 save error: %w", err)
	}
	return nil
}
