// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entity

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteTable writes the sorted book entities followed by a "Chapter N" row
// and the sorted entities of each chapter. Each entity row is name, count.
func WriteTable(w io.Writer, book Found, chapters []Found) error {
	cw := csv.NewWriter(w)
	writeCounts := func(f Found) {
		for _, counts := range []Counts{f.Characters, f.KeyTerms} {
			for _, ec := range Sorted(counts) {
				cw.Write([]string{ec.Name, strconv.Itoa(ec.Count)})
			}
		}
	}

	writeCounts(book)
	for i, ch := range chapters {
		cw.Write([]string{fmt.Sprintf("Chapter %d", i)})
		writeCounts(ch)
	}
	cw.Flush()
	return cw.Error()
}
