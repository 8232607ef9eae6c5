package svlog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// OpenFile opens (creating if absent) the log file for read-write. A
// pre-existing non-empty file is copied under LogBackups first and the live
// file truncated to zero. Any failure here is fatal to the caller and not
// retried; normal logging afterwards never errors.
func (l *Logger) OpenFile(path string) error {
	created := false
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat log file %q: %w", path, err)
		}
		created = true
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %q: %w", path, err)
	}

	if !created {
		if err := backupLogFile(file, path); err != nil {
			file.Close()
			return err
		}
		if err := file.Truncate(0); err != nil {
			file.Close()
			return fmt.Errorf("clear existing log file %q: %w", path, err)
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			file.Close()
			return fmt.Errorf("rewind log file %q: %w", path, err)
		}
	}

	if l.file != nil {
		// at most one open handle
		l.file.Close()
	}
	l.file = file
	l.filePath = path
	return nil
}

// CloseFile closes the current log file, if any.
func (l *Logger) CloseFile() {
	if l.file != nil {
		l.file.Close()
		l.file = nil
		l.filePath = ""
	}
}

// ReleaseFile hands the log file over to the caller: the exclusive handle is
// closed and the path reopened append-only. Returns nil with no error when
// no file is open.
func (l *Logger) ReleaseFile() (*os.File, error) {
	if l.file == nil {
		return nil, nil
	}

	l.file.Close()
	l.file = nil
	path := l.filePath
	l.filePath = ""

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("reopen log file %q: %w", path, err)
	}
	return file, nil
}

// FileName reports the base name of the open log file, empty when closed.
func (l *Logger) FileName() string {
	if l.filePath == "" {
		return ""
	}
	return filepath.Base(l.filePath)
}

// backupLogFile copies the pre-existing file into the LogBackups directory
// next to it. The first BACKUP_HEADER_LIMIT bytes may name a backup
// attachment; an entirely empty file needs no backup.
func backupLogFile(file *os.File, path string) error {
	header := make([]byte, BACKUP_HEADER_LIMIT)
	n, err := file.Read(header)
	if err != nil && err != io.EOF {
		return fmt.Errorf("read existing log file %q: %w", path, err)
	}
	if n == 0 {
		// the existing log file is empty, nothing to preserve
		return nil
	}

	attachment := extractBackupNameAttachment(string(header[:n]))

	backupDir := filepath.Join(filepath.Dir(path), BACKUP_DIR_NAME)
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return fmt.Errorf("create log backup directory %q: %w", backupDir, err)
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	backupPath := filepath.Join(backupDir, stem+attachment+ext)

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind existing log file %q: %w", path, err)
	}
	backup, err := os.Create(backupPath)
	if err != nil {
		return fmt.Errorf("create log backup %q: %w", backupPath, err)
	}
	if _, err := io.Copy(backup, file); err != nil {
		backup.Close()
		return fmt.Errorf("copy existing log file %q to %q: %w", path, backupPath, err)
	}
	if err := backup.Close(); err != nil {
		return fmt.Errorf("close log backup %q: %w", backupPath, err)
	}
	return nil
}

// extractBackupNameAttachment pulls the value out of a leading
// `BackupNameAttachment="value"` marker. The marker must start the header;
// the value runs from the first '"' to the next '"', '\r' or '\n'.
func extractBackupNameAttachment(header string) string {
	if !strings.HasPrefix(header, BACKUP_NAME_ATTACHMENT) {
		return ""
	}
	header = header[len(BACKUP_NAME_ATTACHMENT):]

	if i := strings.IndexByte(header, '"'); i >= 0 {
		header = header[i+1:]
	}

	end := strings.IndexByte(header, '"')
	if end < 0 {
		end = strings.IndexByte(header, '\r')
	}
	if end < 0 {
		end = strings.IndexByte(header, '\n')
	}
	if end >= 0 {
		header = header[:end]
	}
	return header
}

// writeMessageToFile performs the physical file write: prefix (unless
// continuing a line), newline normalization, color-code stripping, one
// trailing platform newline. Continuation writes consume the previous
// trailing newline so the text lands on the same visual line.
func (l *Logger) writeMessageToFile(msg *logMessage) {
	if l.file == nil {
		return
	}

	isAppend := msg.flags&FLAG_APPEND != 0

	var buf bytes.Buffer
	buf.Grow(len(msg.prefix) + len(msg.content) + len(osNewline))

	if !isAppend {
		buf.WriteString(msg.prefix)
	}
	normalizeContent(&buf, msg.content)
	buf.WriteString(osNewline)

	if isAppend {
		if size, err := l.file.Seek(0, io.SeekEnd); err == nil {
			pos := size - int64(len(osNewline))
			if pos < 0 {
				pos = 0
			}
			l.file.Seek(pos, io.SeekStart)
		}
	}

	if _, err := l.file.Write(buf.Bytes()); err != nil {
		l.reportFault("error writing log file %q: %v", l.filePath, err)
	}

	for _, callback := range l.snapshotCallbacks() {
		callback.OnWriteToFile(msg.content, !isAppend)
	}
}

// normalizeContent copies content into buf, replacing '\n' with the platform
// newline and stripping two-byte $-color codes. "$$" collapses to one '$'.
func normalizeContent(buf *bytes.Buffer, content string) {
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			buf.WriteString(osNewline)
		case '$':
			i++
			if i < len(content) && content[i] == '$' {
				buf.WriteByte('$')
			}
		default:
			buf.WriteByte(content[i])
		}
	}
}
