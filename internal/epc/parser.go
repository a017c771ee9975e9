package epc

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// The feeds are line-oriented. Each logical record is a sequence of
// whitespace-separated field=value tokens. Field order is not significant
// and unknown fields are ignored so newer drivers can add fields without
// breaking older monitors.

// ParseGlobalStats parses the global feed into GlobalStats.
// The whole feed is one logical record; a malformed numeric field fails the
// parse and the caller keeps its last-known-good stats.
func ParseGlobalStats(raw []byte) (GlobalStats, error) {
	var stats GlobalStats
	recognized := 0

	for _, token := range strings.Fields(string(raw)) {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			continue
		}

		var dst *uint64
		switch key {
		case "admit":
			dst = &stats.AdmitPages
		case "evict":
			dst = &stats.EvictPages
		case "writeback":
			dst = &stats.WritebackPages
		case "load":
			dst = &stats.LoadPages
		case "total_bytes":
			dst = &stats.TotalBytes
		case "free_bytes":
			dst = &stats.FreeBytes
		case "used_bytes":
			dst = &stats.UsedBytes
		case "va_pages":
			dst = &stats.VAPages
		case "created":
			dst = &stats.EnclavesCreated
		case "released":
			dst = &stats.EnclavesReleased
		default:
			// Unknown field, skip for forward compatibility
			continue
		}

		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return GlobalStats{}, fmt.Errorf("malformed global field %s=%q: %w", key, value, err)
		}
		*dst = n
		recognized++
	}

	if recognized == 0 {
		return GlobalStats{}, fmt.Errorf("global feed contains no recognized fields")
	}

	// Derive used capacity when the feed omits it.
	if stats.UsedBytes == 0 && stats.TotalBytes >= stats.FreeBytes {
		stats.UsedBytes = stats.TotalBytes - stats.FreeBytes
	}

	return stats, nil
}

// ParseEnclaves parses the enclave feed, one record per line.
// Records missing a required field (id, pid) or carrying a malformed numeric
// field are skipped; valid records on other lines are still returned. The
// skipped count is surfaced as a warning indicator, not an error; partial
// data beats no data for a monitoring tool.
func ParseEnclaves(raw []byte) (records []EnclaveRecord, skipped int) {
	seen := make(map[uint64]bool)

	scanner := bufio.NewScanner(strings.NewReader(string(raw)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		rec, ok := parseEnclaveLine(line)
		if !ok {
			skipped++
			continue
		}

		// Enclave ids are unique within a sample; a duplicate means the
		// snapshot is inconsistent, keep the first occurrence.
		if seen[rec.ID] {
			skipped++
			continue
		}
		seen[rec.ID] = true

		records = append(records, rec)
	}

	return records, skipped
}

// parseEnclaveLine parses one enclave record. Returns ok=false when the
// record must be skipped.
func parseEnclaveLine(line string) (EnclaveRecord, bool) {
	var rec EnclaveRecord
	var haveID, havePID bool

	for _, token := range strings.Fields(line) {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			continue
		}

		switch key {
		case "id":
			n, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return EnclaveRecord{}, false
			}
			rec.ID = n
			haveID = true

		case "pid":
			n, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return EnclaveRecord{}, false
			}
			rec.PID = int(n)
			havePID = true

		case "cmd":
			rec.Command = value

		case "state":
			// Unknown state tokens degrade to StateUnknown rather than
			// invalidating the record.
			rec.State, _ = ParseState(value)

		case "admit", "resident_bytes", "swapped_bytes", "virt_bytes", "va_pages":
			n, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return EnclaveRecord{}, false
			}
			switch key {
			case "admit":
				rec.AdmitPages = n
			case "resident_bytes":
				rec.ResidentBytes = n
			case "swapped_bytes":
				rec.SwappedBytes = n
			case "virt_bytes":
				rec.VirtBytes = n
			case "va_pages":
				rec.VAPages = n
			}

		default:
			// Unknown field, skip for forward compatibility
		}
	}

	if !haveID || !havePID {
		return EnclaveRecord{}, false
	}

	return rec, true
}
