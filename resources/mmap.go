package resources

import (
	"os"

	"github.com/edsrzf/mmap-go"
)

// readMmap maps a whole file read-only. Empty files are not mapped.
func readMmap(file *os.File) (mmap.MMap, *[]byte, error) {
	info, statErr := file.Stat()
	if statErr != nil {
		return nil, nil, statErr
	}
	if info.Size() == 0 {
		empty := make([]byte, 0)
		return nil, &empty, nil
	}
	fileMmap, mmapErr := mmap.Map(file, mmap.RDONLY, 0)
	if mmapErr != nil {
		return nil, nil, mmapErr
	}
	mmapBytes := (*[]byte)(&fileMmap)
	return fileMmap, mmapBytes, nil
}
