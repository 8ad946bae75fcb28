package recipe

// duplicateReason 重複報告的原因文字
const duplicateReason = "Similar content detected"

// Deduplicate 對食譜列表去重（使用預設門檻）
func Deduplicate(records []Recipe) DeduplicationResult {
	return defaultMatcher.Deduplicate(records)
}

// Deduplicate 由左至右單趟掃描，將列表劃分為唯一子集與重複報告
// 同一組相同食譜中最先出現者保留，其後每筆都回報為其重複
// 輸入列表不會被修改，也不會被保留引用
func (m *Matcher) Deduplicate(records []Recipe) DeduplicationResult {
	unique := make([]Recipe, 0, len(records))
	duplicates := make([]DuplicateReport, 0)

	for _, record := range records {
		matched := false
		for _, candidate := range unique {
			if m.AreIdentical(record, candidate) {
				// 只記錄第一個命中的保留食譜
				duplicates = append(duplicates, DuplicateReport{
					Duplicate:     record,
					OriginalTitle: candidate.Title,
					Reason:        duplicateReason,
				})
				matched = true
				break
			}
		}
		if !matched {
			unique = append(unique, record)
		}
	}

	return DeduplicationResult{
		Unique:       unique,
		Duplicates:   duplicates,
		RemovedCount: len(duplicates),
	}
}
