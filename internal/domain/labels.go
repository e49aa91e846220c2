package domain

// Label holds the display text of an enum value in each language.
type Label struct {
	UA string `json:"ua"`
	JP string `json:"jp"`
	EN string `json:"en"`
}

// In returns the text for lang. Unsupported tags yield an empty string.
func (l Label) In(lang Lang) string {
	switch lang {
	case LangUA:
		return l.UA
	case LangJP:
		return l.JP
	case LangEN:
		return l.EN
	}
	return ""
}

// Label returns the display names of t. Unknown values return false.
func (t JobType) Label() (Label, bool) {
	switch t {
	case JobTypePartTime:
		return Label{UA: "Підробіток", JP: "アルバイト", EN: "Part-time"}, true
	case JobTypeFullTime:
		return Label{UA: "Повна зайнятість", JP: "正社員", EN: "Full-time"}, true
	case JobTypeContract:
		return Label{UA: "Контракт", JP: "契約", EN: "Contract"}, true
	case JobTypeIntern:
		return Label{UA: "Інтернатура", JP: "インターン", EN: "Internship"}, true
	}
	return Label{}, false
}

// Label returns the display names of d. Unknown values return false.
func (d Duration) Label() (Label, bool) {
	switch d {
	case DurationOneDay:
		return Label{UA: "1 день", JP: "1日", EN: "1 day"}, true
	case DurationShortTerm:
		return Label{UA: "Короткий термін", JP: "短期", EN: "Short-term"}, true
	case DurationOneMonth:
		return Label{UA: "1 місяць", JP: "1ヶ月", EN: "1 month"}, true
	case DurationFullTime:
		return Label{UA: "Повна зайнятість", JP: "フルタイム", EN: "Full-time"}, true
	}
	return Label{}, false
}

// Label returns the display names of l as used in listings and filters.
func (l JPLevel) Label() (Label, bool) {
	switch l {
	case JPLevelNone:
		return Label{UA: "Не вимагається", JP: "不要", EN: "Not required"}, true
	case JPLevelBasic:
		return Label{UA: "Базовий", JP: "初級", EN: "Basic"}, true
	case JPLevelN4:
		return Label{UA: "N4", JP: "N4", EN: "N4"}, true
	case JPLevelN3:
		return Label{UA: "N3", JP: "N3", EN: "N3"}, true
	case JPLevelN2:
		return Label{UA: "N2", JP: "N2", EN: "N2"}, true
	case JPLevelN1:
		return Label{UA: "N1", JP: "N1", EN: "N1"}, true
	}
	return Label{}, false
}

// DetailLabel returns the wording used on a single job page, where Basic reads 基礎 in Japanese.
func (l JPLevel) DetailLabel() (Label, bool) {
	label, ok := l.Label()
	if ok && l == JPLevelBasic {
		label.JP = "基礎"
	}
	return label, ok
}
