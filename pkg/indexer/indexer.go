// Package indexer appends download records to a flat text index file.
package indexer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Template tokens.
const (
	TokenURL        = "[URL]"
	TokenTitle      = "[TITLE]"
	TokenPlatform   = "[PLATFORM]"
	TokenDate       = "[DATE]"
	TokenArtistList = "[ARTIST_LIST]"
)

const DateLayout = "2006-01-02"

var (
	ErrEmptyTemplate     = errors.New("index template is empty")
	ErrMultilineTemplate = errors.New("index template must be a single line")
	ErrNoTokens          = errors.New("index template contains no known token")
)

// Opener opens the index file for appending.
type Opener func(path string) (io.WriteCloser, error)

func appendOpener(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

// Entry is one member of a downloaded playlist.
type Entry struct {
	URL   string
	Title string
}

// Indexer owns the index file handle. It is not safe for concurrent use.
type Indexer struct {
	path     string
	template string
	date     string
	opener   Opener
	logger   *log.Logger

	file io.WriteCloser
}

type Option func(*Indexer)

// WithDate fixes the value substituted for [DATE].
func WithDate(date string) Option {
	return func(i *Indexer) {
		i.date = date
	}
}

func WithOpener(opener Opener) Option {
	return func(i *Indexer) {
		i.opener = opener
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(i *Indexer) {
		i.logger = logger
	}
}

// New returns a closed indexer. The file is opened on the first append.
func New(path, template string, opts ...Option) *Indexer {
	i := &Indexer{
		path:     path,
		template: template,
		date:     time.Now().Format(DateLayout),
		opener:   appendOpener,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ValidateTemplate rejects templates that cannot produce a usable one line record.
func ValidateTemplate(template string) error {
	if strings.TrimSpace(template) == "" {
		return ErrEmptyTemplate
	}
	if strings.ContainsAny(template, "\r\n") {
		return ErrMultilineTemplate
	}
	for _, token := range []string{TokenURL, TokenTitle, TokenPlatform, TokenDate, TokenArtistList} {
		if strings.Contains(template, token) {
			return nil
		}
	}
	return ErrNoTokens
}

func (i *Indexer) Path() string {
	return i.path
}

func (i *Indexer) IsOpen() bool {
	return i.file != nil
}

// Open opens the index file if it is not open yet.
func (i *Indexer) Open() error {
	if i.file != nil {
		return nil
	}
	f, err := i.opener(i.path)
	if err != nil {
		return fmt.Errorf("open index file %s: %w", i.path, err)
	}
	i.file = f
	return nil
}

// Close is safe to call on a closed indexer.
func (i *Indexer) Close() error {
	if i.file == nil {
		return nil
	}
	err := i.file.Close()
	i.file = nil
	if err != nil {
		return fmt.Errorf("close index file %s: %w", i.path, err)
	}
	return nil
}

// Reconfigure closes the current file and adopts the new settings. The new file is opened on
// the next append. An empty date keeps the current one.
func (i *Indexer) Reconfigure(path, template, date string) error {
	err := i.Close()
	i.path = path
	i.template = template
	if date != "" {
		i.date = date
	}
	return err
}

// Format substitutes every template token. Values are inserted verbatim and never re-scanned.
func (i *Indexer) Format(url, title string, creators []string, platform string) string {
	r := strings.NewReplacer(
		TokenURL, url,
		TokenTitle, title,
		TokenPlatform, platform,
		TokenDate, i.date,
		TokenArtistList, strings.Join(creators, ", "),
	)
	return r.Replace(i.template)
}

// AppendSingle appends one record for a single downloaded item.
func (i *Indexer) AppendSingle(url, title string, creators []string, platform string) error {
	record := i.Format(url, title, creators, platform) + "\n"
	if err := i.write(record); err != nil {
		return err
	}
	i.logger.Debug("Indexed item", "record", strings.TrimSuffix(record, "\n"))
	return nil
}

// AppendPlaylist appends a playlist block: a header line, one tab indented record per entry
// and a blank line. Entries and creators are paired by position; extra elements of the longer
// sequence are dropped. The block goes out in a single write, so a failure may still leave a
// partial block behind. That partial block is not rolled back.
func (i *Indexer) AppendPlaylist(url, title string, entries []Entry, creators [][]string, platform string) error {
	n := len(entries)
	if len(creators) != n {
		n = min(n, len(creators))
		i.logger.Warn("Playlist entries and creators differ in length, truncating",
			"entries", len(entries), "creators", len(creators), "kept", n)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "PLAYLIST: %s: %s - %s:\n", platform, url, title)
	for k := 0; k < n; k++ {
		b.WriteByte('\t')
		b.WriteString(i.Format(entries[k].URL, entries[k].Title, creators[k], platform))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	if err := i.write(b.String()); err != nil {
		return err
	}
	i.logger.Debug("Indexed playlist", "url", url, "entries", n)
	return nil
}

func (i *Indexer) write(s string) error {
	openedHere := i.file == nil
	if err := i.Open(); err != nil {
		return err
	}
	n, err := io.WriteString(i.file, s)
	if err == nil && n < len(s) {
		err = io.ErrShortWrite
	}
	if err == nil {
		return nil
	}
	if openedHere {
		i.Close()
	}
	return fmt.Errorf("write index file %s: %w", i.path, err)
}
