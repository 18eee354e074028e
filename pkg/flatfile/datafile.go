package flatfile

// DataFile is the result of one load: the parsed records in file order plus
// every warning encountered, in line order then field-definition order. It
// is created atomically by a single load call and never mutated afterwards.
type DataFile struct {
	records  []Record
	warnings []Warning
}

// Records returns the parsed records in file order.
func (f *DataFile) Records() []Record { return f.records }

// Warnings returns the non-fatal issues accumulated during the load.
func (f *DataFile) Warnings() []Warning { return f.warnings }
