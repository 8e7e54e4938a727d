package ocr

import "encoding/json"

// Keys whose presence at the top level marks a payload as single-page
// content even when no results/pages array exists.
var pageLikeKeys = []string{"text", "transcript", "tables", "key_value_pairs", "extractions", "fields"}

// Normalize maps an arbitrary provider result payload into a canonical
// Result. It tolerates several payload shapes without failing: a "results"
// array of page objects, a "pages" array (only consulted when "results" is
// absent or empty), or a bare object carrying page-like keys at the top
// level, which is treated as one implicit page. Missing or malformed
// sub-fields degrade to defaults; only a payload that is not a JSON object
// at all is an error.
func Normalize(jobID string, payload json.RawMessage) (*Result, error) {
	var decoded interface{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, ocrErrors.NewWithCause(ErrInvalidPayload, err)
	}

	root, ok := decoded.(map[string]interface{})
	if !ok {
		return nil, ocrErrors.New(ErrInvalidPayload).WithDetail("job_id", jobID)
	}

	pagesPayload := asSlice(root["results"])
	if len(pagesPayload) == 0 {
		pagesPayload = asSlice(root["pages"])
	}
	if len(pagesPayload) == 0 && hasPageLikeKeys(root) {
		pagesPayload = []interface{}{decoded}
	}

	pages := make([]PageResult, 0, len(pagesPayload))
	for idx, entry := range pagesPayload {
		pages = append(pages, normalizePage(entry, idx+1))
	}

	return &Result{
		JobID: jobID,
		Pages: pages,
		Raw:   root,
	}, nil
}

// normalizePage maps one page entry. position is the 1-based index used
// when the entry carries no usable page number of its own. A non-object
// entry degrades to an empty page rather than failing the normalization.
func normalizePage(entry interface{}, position int) PageResult {
	result := PageResult{
		PageNumber: position,
		Tables:     []interface{}{},
		Fields:     map[string]interface{}{},
	}

	page, ok := entry.(map[string]interface{})
	if !ok {
		return result
	}

	if n, ok := asNumber(page["page_number"]); ok && n != 0 {
		result.PageNumber = int(n)
	}

	// Text lives under "transcript" or "text"; transcript wins.
	if s := asString(page["transcript"]); s != "" {
		result.Text = s
	} else if s := asString(page["text"]); s != "" {
		result.Text = s
	}

	if tables := asSlice(page["tables"]); tables != nil {
		result.Tables = tables
	}

	// Field sources merge in a fixed priority order; later sources
	// overwrite earlier ones on key collision.
	if fields, ok := page["fields"].(map[string]interface{}); ok {
		for k, v := range fields {
			result.Fields[k] = v
		}
	}

	for _, kv := range asSlice(page["key_value_pairs"]) {
		pair, ok := kv.(map[string]interface{})
		if !ok {
			continue
		}
		if key := asString(pair["key"]); key != "" {
			result.Fields[key] = pair["value"]
		}
	}

	for _, group := range asSlice(page["extractions"]) {
		for _, ext := range asSlice(group) {
			extraction, ok := ext.(map[string]interface{})
			if !ok {
				continue
			}
			if key := asString(extraction["key"]); key != "" {
				result.Fields[key] = extraction["value"]
			}
		}
	}

	if conf, ok := asNumber(page["confidence"]); ok {
		result.Confidence = &conf
	}

	return result
}

func hasPageLikeKeys(root map[string]interface{}) bool {
	for _, key := range pageLikeKeys {
		if _, ok := root[key]; ok {
			return true
		}
	}
	return false
}

func asSlice(v interface{}) []interface{} {
	s, _ := v.([]interface{})
	return s
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asNumber(v interface{}) (float64, bool) {
	n, ok := v.(float64)
	return n, ok
}
