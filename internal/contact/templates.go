package contact

import (
	"strings"

	"github.com/ironarian/ukr-jobs-japan/internal/domain"
)

type jobTemplate struct {
	subject  string
	greeting string
	intro    string
	title    string
	company  string
	location string
	closing  []string
	thanks   string
}

type inquiryTemplate struct {
	subject    string
	refSubject func(ref string) string
	greeting   string
	intro      string
	refLine    func(ref string) string
	closing    []string
	thanks     string
}

func jobTemplateFor(lang domain.Lang) (jobTemplate, bool) {
	switch lang {
	case domain.LangUA:
		return jobTemplate{
			subject:  "Запит щодо вакансії",
			greeting: "Вітаю!",
			intro:    "Хочу надіслати запит щодо цієї вакансії:",
			title:    "• Назва: ",
			company:  "• Компанія: ",
			location: "• Локація: ",
			closing:  []string{"Ім'я:", "Контакт (телефон / email):", "Коротко про себе:"},
			thanks:   "Дякую.",
		}, true
	case domain.LangJP:
		return jobTemplate{
			subject:  "求人についてのお問い合わせ",
			greeting: "はじめまして。",
			intro:    "下記の求人についてお問い合わせいたします。",
			title:    "・職種: ",
			company:  "・会社: ",
			location: "・勤務地: ",
			closing:  []string{"氏名:", "連絡先（電話／メール）:", "簡単な自己紹介:"},
			thanks:   "よろしくお願いいたします。",
		}, true
	case domain.LangEN:
		return jobTemplate{
			subject:  "Job inquiry",
			greeting: "Hello,",
			intro:    "I would like to inquire about this job:",
			title:    "• Title: ",
			company:  "• Company: ",
			location: "• Location: ",
			closing:  []string{"Name:", "Contact (phone / email):", "Short introduction:"},
			thanks:   "Thank you.",
		}, true
	}
	return jobTemplate{}, false
}

func inquiryTemplateFor(lang domain.Lang) (inquiryTemplate, bool) {
	switch lang {
	case domain.LangUA:
		return inquiryTemplate{
			subject:    "Запит щодо працевлаштування",
			refSubject: func(ref string) string { return "Запит щодо вакансії (" + ref + ")" },
			greeting:   "Вітаю!",
			intro:      "Хочу надіслати запит щодо працевлаштування.",
			refLine:    func(ref string) string { return "ID вакансії: " + ref },
			closing:    []string{"Ім'я:", "Контакт (телефон / email):", "Коротко про мене:"},
			thanks:     "Дякую!",
		}, true
	case domain.LangJP:
		return inquiryTemplate{
			subject:    "お問い合わせ",
			refSubject: func(ref string) string { return "求人お問い合わせ（" + ref + "）" },
			greeting:   "はじめまして。",
			intro:      "就職についてお問い合わせします。",
			refLine:    func(ref string) string { return "求人ID: " + ref },
			closing:    []string{"氏名:", "連絡先（電話 / メール）:", "簡単な自己紹介:"},
			thanks:     "よろしくお願いいたします。",
		}, true
	case domain.LangEN:
		return inquiryTemplate{
			subject:    "Job inquiry",
			refSubject: func(ref string) string { return "Job inquiry (" + ref + ")" },
			greeting:   "Hello,",
			intro:      "I would like to inquire about employment opportunities.",
			refLine:    func(ref string) string { return "Job ID: " + ref },
			closing:    []string{"Name:", "Contact (phone / email):", "Short introduction:"},
			thanks:     "Thank you.",
		}, true
	}
	return inquiryTemplate{}, false
}

func (t jobTemplate) render(title, company, location string) (string, string) {
	lines := []string{
		t.greeting,
		"",
		t.intro,
		t.title + title,
		t.company + company,
		t.location + location,
		"",
	}
	lines = append(lines, t.closing...)
	lines = append(lines, "", t.thanks)
	return t.subject, strings.Join(lines, "\n")
}

// render drops blank lines, so inquiry bodies have no empty separator lines.
func (t inquiryTemplate) render(ref string) (string, string) {
	subject := t.subject
	lines := []string{t.greeting, t.intro}
	if ref != "" {
		subject = t.refSubject(ref)
		lines = append(lines, t.refLine(ref))
	}
	lines = append(lines, t.closing...)
	lines = append(lines, t.thanks)
	return subject, strings.Join(lines, "\n")
}
