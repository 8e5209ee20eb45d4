package core

// InputSource is where a parser reads its table from: a FilePath or a LoadedTable.
type InputSource interface {
	inputSource()
}

// FilePath names a table file on disk.
type FilePath string

// LoadedTable is a table that is already in memory.
type LoadedTable struct {
	Table *RawTable
}

func (FilePath) inputSource()    {}
func (LoadedTable) inputSource() {}
