package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// FASTAFile is a SequenceSource backed by a FASTA file. The first
// whitespace-separated field of each header line is taken as the
// species_id; the rest of the header is ignored. Sequence lines belonging
// to one record are concatenated.
type FASTAFile struct {
	Path string
}

func NewFASTAFile(path string) *FASTAFile {
	return &FASTAFile{Path: path}
}

func (f *FASTAFile) Sequences() ([]ReferenceRecord, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("could not open FASTA file '%s': %w", f.Path, err)
	}
	defer file.Close()

	records, err := ParseFASTA(file)
	if err != nil {
		return nil, fmt.Errorf("could not parse FASTA file '%s': %w", f.Path, err)
	}
	return records, nil
}

// ParseFASTA reads FASTA records from r. Parsing is deliberately simple
// and conservative: '>' starts a record, everything else is sequence
// data. Records with an empty header field are skipped.
func ParseFASTA(r io.Reader) ([]ReferenceRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var records []ReferenceRecord
	var current ReferenceRecord
	var seq strings.Builder
	open := false

	flush := func() {
		if open && current.SpeciesID != "" {
			current.Sequence = seq.String()
			records = append(records, current)
		}
		seq.Reset()
		open = false
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, ">") {
			flush()
			header := strings.TrimSpace(line[1:])
			fields := strings.Fields(header)
			current = ReferenceRecord{}
			if len(fields) > 0 {
				current.SpeciesID = fields[0]
			}
			open = true
			continue
		}
		if open {
			seq.WriteString(line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
