// Package localize resolves the display value of each localized field group of a job.
//
// Every group has its own fallback base:
//
//	group        ua              jp                        en
//	title        title           titleJP else title        titleEN else title
//	company      company         companyJP else company    companyEN else company
//	location     locationUA      locationJP                locationEN
//	             else location   else location             else location
//	salary       salaryUA        salaryJP else salaryUA    salaryEN else salaryUA
//	tags         tagsUA          tagsJP else tagsUA        tagsEN else tagsUA
//	description  descriptionUA   descriptionJP else UA     descriptionEN else UA
//	apply note   applyNoteUA     applyNoteJP else UA       applyNoteEN else UA
//
// An override is used whenever it is set, even to an empty value. The per-group
// functions expect a supported language; Resolve validates it.
package localize

import (
	"fmt"

	"github.com/ironarian/ukr-jobs-japan/internal/domain"
)

// FieldGroup names a localized group of job fields.
type FieldGroup string

const (
	FieldTitle       FieldGroup = "title"
	FieldCompany     FieldGroup = "company"
	FieldLocation    FieldGroup = "location"
	FieldSalary      FieldGroup = "salary"
	FieldTags        FieldGroup = "tags"
	FieldDescription FieldGroup = "description"
	FieldApplyNote   FieldGroup = "applyNote"
)

// FieldGroups lists every localized group.
func FieldGroups() []FieldGroup {
	return []FieldGroup{FieldTitle, FieldCompany, FieldLocation, FieldSalary, FieldTags, FieldDescription, FieldApplyNote}
}

// Title resolves ua: title; jp: titleJP else title; en: titleEN else title.
func Title(job *domain.Job, lang domain.Lang) string {
	switch lang {
	case domain.LangJP:
		return override(job.TitleJP, job.Title)
	case domain.LangEN:
		return override(job.TitleEN, job.Title)
	}
	return job.Title
}

// Company resolves ua: company; jp: companyJP else company; en: companyEN else company.
func Company(job *domain.Job, lang domain.Lang) string {
	switch lang {
	case domain.LangJP:
		return override(job.CompanyJP, job.Company)
	case domain.LangEN:
		return override(job.CompanyEN, job.Company)
	}
	return job.Company
}

// Location resolves each language to its own override else location. Unlike title and
// company, Ukrainian has an override too.
func Location(job *domain.Job, lang domain.Lang) string {
	switch lang {
	case domain.LangJP:
		return override(job.LocationJP, job.Location)
	case domain.LangEN:
		return override(job.LocationEN, job.Location)
	}
	return override(job.LocationUA, job.Location)
}

// Salary resolves ua: salaryUA; jp: salaryJP else salaryUA; en: salaryEN else salaryUA.
func Salary(job *domain.Job, lang domain.Lang) Optional[string] {
	return fromPtr(pick(lang, job.SalaryUA, job.SalaryJP, job.SalaryEN))
}

// Tags resolves ua: tagsUA; jp: tagsJP else tagsUA; en: tagsEN else tagsUA.
// The returned slice is a copy.
func Tags(job *domain.Job, lang domain.Lang) Optional[[]string] {
	base := job.TagsUA
	switch lang {
	case domain.LangJP:
		if job.TagsJP != nil {
			return fromSlice(job.TagsJP)
		}
	case domain.LangEN:
		if job.TagsEN != nil {
			return fromSlice(job.TagsEN)
		}
	}
	return fromSlice(base)
}

// Description resolves ua: descriptionUA; jp: descriptionJP else descriptionUA;
// en: descriptionEN else descriptionUA.
func Description(job *domain.Job, lang domain.Lang) Optional[string] {
	return fromPtr(pick(lang, job.DescriptionUA, job.DescriptionJP, job.DescriptionEN))
}

// ApplyNote resolves ua: applyNoteUA; jp: applyNoteJP else applyNoteUA;
// en: applyNoteEN else applyNoteUA.
func ApplyNote(job *domain.Job, lang domain.Lang) Optional[string] {
	return fromPtr(pick(lang, job.ApplyNoteUA, job.ApplyNoteJP, job.ApplyNoteEN))
}

// Value is the result of Resolve. Text is set for string groups and Tags for the tags group.
type Value struct {
	Group   FieldGroup
	Text    string
	Tags    []string
	Present bool
}

// Resolve dispatches to the resolver of group. It fails only for an unsupported language
// or an unknown group.
func Resolve(job *domain.Job, group FieldGroup, lang domain.Lang) (Value, error) {
	if !lang.Valid() {
		return Value{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, lang)
	}
	switch group {
	case FieldTitle:
		return Value{Group: group, Text: Title(job, lang), Present: true}, nil
	case FieldCompany:
		return Value{Group: group, Text: Company(job, lang), Present: true}, nil
	case FieldLocation:
		return Value{Group: group, Text: Location(job, lang), Present: true}, nil
	case FieldSalary:
		return textValue(group, Salary(job, lang)), nil
	case FieldTags:
		tags, ok := Tags(job, lang).Get()
		return Value{Group: group, Tags: tags, Present: ok}, nil
	case FieldDescription:
		return textValue(group, Description(job, lang)), nil
	case FieldApplyNote:
		return textValue(group, ApplyNote(job, lang)), nil
	}
	return Value{}, fmt.Errorf("localize: unknown field group %q", group)
}

func textValue(group FieldGroup, opt Optional[string]) Value {
	text, ok := opt.Get()
	return Value{Group: group, Text: text, Present: ok}
}

func override(value *string, base string) string {
	if value != nil {
		return *value
	}
	return base
}

func pick(lang domain.Lang, ua, jp, en *string) *string {
	switch lang {
	case domain.LangJP:
		if jp != nil {
			return jp
		}
	case domain.LangEN:
		if en != nil {
			return en
		}
	}
	return ua
}
