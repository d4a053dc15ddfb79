package mem

import "encoding/binary"

// DefaultBytesPageSize provides a default for Bytes.PageSize.
const DefaultBytesPageSize = 4096

// Bytes implements a byte-oriented paged memory, suitable for backing a
// dictionary arena: individual bytes for names and flags, and aligned
// little-endian cells for link/codeword/body words.
//
// Pages may not necessarily be the same size, but usually are in practice.
type Bytes struct {
	PagedCore
	pages [][]byte
}

// Size returns an address one position higher than the last position in the
// last page allocated so far.
func (m *Bytes) Size() uint {
	if i := len(m.bases) - 1; i >= 0 {
		return m.bases[i] + uint(len(m.pages[i]))
	}
	return 0
}

// LoadByte returns a single byte from the given address.
// Unallocated pages are left unallocated, resulting in implicit 0 values.
func (m *Bytes) LoadByte(addr uint) (byte, error) {
	if err := m.checkLimit(addr, "load"); err != nil {
		return 0, err
	}

	if m.PageSize == 0 || len(m.pages) == 0 {
		return 0, nil
	}

	pageID := m.findPage(addr)
	base := m.bases[pageID]
	page := m.pages[pageID]
	if i := int(addr) - int(base); 0 <= i && i < len(page) {
		return page[i], nil
	}

	return 0, nil
}

// LoadInto reads len(buf) bytes from memory starting at addr.
// Skips any unallocated pages, zeroing the result buffer where encountered.
func (m *Bytes) LoadInto(addr uint, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	end := addr + uint(len(buf))
	if err := m.checkLimit(end, "load"); err != nil {
		return err
	}

	for pageID := m.findPage(addr); addr < end && pageID < len(m.bases); pageID++ {
		base := m.bases[pageID]
		if base > end {
			break
		}

		if skip := int(base) - int(addr); skip > 0 {
			if skip >= len(buf) {
				break
			}
			addr += uint(skip)
			for i := range buf[:skip] {
				buf[i] = 0
			}
			buf = buf[skip:]
		}

		page := m.pages[pageID]
		if skip := int(addr) - int(base); skip > 0 {
			if skip >= len(page) {
				continue
			}
			base += uint(skip)
			page = page[skip:]
		}

		n := copy(buf, page)
		buf = buf[n:]
		addr += uint(n)
	}

	for i := range buf {
		buf[i] = 0
	}

	return nil
}

// StorByte stores a single byte at addr, allocating pages if necessary.
func (m *Bytes) StorByte(addr uint, value byte) error {
	return m.Stor(addr, value)
}

// Stor stores any values at addr, allocating pages if necessary.
func (m *Bytes) Stor(addr uint, values ...byte) error {
	if len(values) == 0 {
		return nil
	}

	end := addr + uint(len(values))
	if err := m.checkLimit(end, "stor"); err != nil {
		return err
	}

	if m.PageSize == 0 {
		m.PageSize = DefaultBytesPageSize
	}

	for pageID := m.findPage(addr); addr < end; pageID++ {
		base, size, page := m.allocPage(pageID, addr)
		if skip := addr - base; skip > 0 {
			if skip >= size {
				continue
			}
			base += skip
			page = page[skip:]
		}
		n := copy(page, values)
		values = values[n:]
		addr += uint(n)
	}

	return nil
}

func (m *Bytes) allocPage(pageID int, addr uint) (base, size uint, page []byte) {
	base, size, isNew := m.PagedCore.allocPage(pageID, addr)
	if isNew {
		page = make([]byte, size)
		if pageID == len(m.bases) {
			m.pages = append(m.pages, page)
		} else {
			m.pages = append(m.pages, nil)
			copy(m.pages[pageID+1:], m.pages[pageID:])
			m.pages[pageID] = page
		}
	} else {
		page = m.pages[pageID]
	}
	return base, size, page
}

// LoadCell reads a CellSize-wide little-endian signed cell at addr.
func (m *Bytes) LoadCell(addr uint, cellSize int) (int64, error) {
	var buf [8]byte
	if err := m.LoadInto(addr, buf[:cellSize]); err != nil {
		return 0, err
	}
	switch cellSize {
	case 8:
		return int64(binary.LittleEndian.Uint64(buf[:8])), nil
	case 4:
		return int64(int32(binary.LittleEndian.Uint32(buf[:4]))), nil
	default:
		var v int64
		for i := cellSize - 1; i >= 0; i-- {
			v = v<<8 | int64(buf[i])
		}
		return v, nil
	}
}

// StorCell writes a CellSize-wide little-endian signed cell at addr.
func (m *Bytes) StorCell(addr uint, val int64, cellSize int) error {
	var buf [8]byte
	switch cellSize {
	case 8:
		binary.LittleEndian.PutUint64(buf[:8], uint64(val))
	case 4:
		binary.LittleEndian.PutUint32(buf[:4], uint32(val))
	default:
		for i := 0; i < cellSize; i++ {
			buf[i] = byte(val)
			val >>= 8
		}
	}
	return m.Stor(addr, buf[:cellSize]...)
}
