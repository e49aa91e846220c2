package localize

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironarian/ukr-jobs-japan/internal/domain"
)

func fullJob() *domain.Job {
	return &domain.Job{
		ID:            "cocorogoto-cafe-shibuya",
		Title:         "Працівник кафе (підробіток)",
		TitleJP:       domain.String("カフェスタッフ（アルバイト）"),
		TitleEN:       domain.String("Cafe staff (part-time)"),
		Company:       "Cocorogoto Cafe",
		CompanyJP:     domain.String("ココロゴトカフェ（Cocorogoto Cafe）"),
		CompanyEN:     domain.String("Cocorogoto Cafe EN"),
		Location:      "Shibuya, Tokyo",
		LocationUA:    domain.String("Шібуя, Токіо"),
		LocationJP:    domain.String("東京都渋谷区"),
		LocationEN:    domain.String("Shibuya, Tokyo EN"),
		SalaryUA:      domain.String("Від ¥1,226/год"),
		SalaryJP:      domain.String("時給1,226円〜"),
		SalaryEN:      domain.String("From ¥1,226/hour"),
		TagsUA:        []string{"Для українців"},
		TagsJP:        []string{"ウクライナ避難民歓迎"},
		TagsEN:        []string{"For Ukrainians"},
		DescriptionUA: domain.String("опис"),
		DescriptionJP: domain.String("説明"),
		DescriptionEN: domain.String("description"),
		ApplyNoteUA:   domain.String("нотатка"),
		ApplyNoteJP:   domain.String("メモ"),
		ApplyNoteEN:   domain.String("note"),
		Type:          domain.JobTypePartTime,
		Duration:      domain.DurationShortTerm,
		JPLevel:       domain.JPLevelNone,
		UpdatedAt:     "2025-12-14",
	}
}

func baseOnlyJob() *domain.Job {
	return &domain.Job{
		ID:       "base",
		Title:    "Назва",
		Company:  "Компанія",
		Location: "Місто",
	}
}

func TestTextGroupsUseOverrideElseBase(t *testing.T) {
	t.Parallel()

	full := fullJob()
	base := baseOnlyJob()

	cases := []struct {
		name     string
		resolve  func(*domain.Job, domain.Lang) string
		lang     domain.Lang
		withOver string
		baseOnly string
	}{
		{"title ua", Title, domain.LangUA, "Працівник кафе (підробіток)", "Назва"},
		{"title jp", Title, domain.LangJP, "カフェスタッフ（アルバイト）", "Назва"},
		{"title en", Title, domain.LangEN, "Cafe staff (part-time)", "Назва"},
		{"company ua", Company, domain.LangUA, "Cocorogoto Cafe", "Компанія"},
		{"company jp", Company, domain.LangJP, "ココロゴトカフェ（Cocorogoto Cafe）", "Компанія"},
		{"company en", Company, domain.LangEN, "Cocorogoto Cafe EN", "Компанія"},
		{"location ua", Location, domain.LangUA, "Шібуя, Токіо", "Місто"},
		{"location jp", Location, domain.LangJP, "東京都渋谷区", "Місто"},
		{"location en", Location, domain.LangEN, "Shibuya, Tokyo EN", "Місто"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.withOver, tc.resolve(full, tc.lang))
			require.Equal(t, tc.baseOnly, tc.resolve(base, tc.lang))
		})
	}
}

func TestTitleIgnoresUkrainianLocationStyleOverride(t *testing.T) {
	t.Parallel()

	job := baseOnlyJob()
	job.LocationUA = domain.String("Київ")
	require.Equal(t, "Назва", Title(job, domain.LangUA))
	require.Equal(t, "Київ", Location(job, domain.LangUA))
	require.Equal(t, "Місто", Location(job, domain.LangEN))
}

func TestOptionalGroupsFallBackToUkrainian(t *testing.T) {
	t.Parallel()

	job := baseOnlyJob()
	job.SalaryUA = domain.String("¥1,000")
	job.DescriptionUA = domain.String("опис")
	job.ApplyNoteUA = domain.String("нотатка")
	job.TagsUA = []string{"a", "b"}

	for _, lang := range domain.SupportedLangs() {
		salary, ok := Salary(job, lang).Get()
		require.True(t, ok, lang)
		require.Equal(t, "¥1,000", salary)

		description, ok := Description(job, lang).Get()
		require.True(t, ok, lang)
		require.Equal(t, "опис", description)

		note, ok := ApplyNote(job, lang).Get()
		require.True(t, ok, lang)
		require.Equal(t, "нотатка", note)

		tags, ok := Tags(job, lang).Get()
		require.True(t, ok, lang)
		require.Equal(t, []string{"a", "b"}, tags)
	}
}

func TestOptionalGroupsPreferLanguageOverride(t *testing.T) {
	t.Parallel()

	job := fullJob()
	require.Equal(t, "時給1,226円〜", Salary(job, domain.LangJP).OrElse(""))
	require.Equal(t, "From ¥1,226/hour", Salary(job, domain.LangEN).OrElse(""))
	require.Equal(t, "Від ¥1,226/год", Salary(job, domain.LangUA).OrElse(""))
	require.Equal(t, []string{"ウクライナ避難民歓迎"}, Tags(job, domain.LangJP).OrElse(nil))
	require.Equal(t, "description", Description(job, domain.LangEN).OrElse(""))
	require.Equal(t, "メモ", ApplyNote(job, domain.LangJP).OrElse(""))
}

func TestEnglishOverrideDoesNotLeakIntoUkrainian(t *testing.T) {
	t.Parallel()

	job := baseOnlyJob()
	job.SalaryEN = domain.String("$10")
	job.TagsJP = []string{"日本"}

	require.False(t, Salary(job, domain.LangUA).Present())
	require.False(t, Salary(job, domain.LangJP).Present())
	require.Equal(t, "$10", Salary(job, domain.LangEN).OrElse(""))
	require.False(t, Tags(job, domain.LangUA).Present())
	require.True(t, Tags(job, domain.LangJP).Present())
}

func TestAbsentGroupsAreMarkedAbsent(t *testing.T) {
	t.Parallel()

	job := baseOnlyJob()
	for _, lang := range domain.SupportedLangs() {
		require.False(t, Salary(job, lang).Present())
		require.False(t, Tags(job, lang).Present())
		require.False(t, Description(job, lang).Present())
		require.False(t, ApplyNote(job, lang).Present())
	}
}

func TestEmptyOverrideIsStillAnOverride(t *testing.T) {
	t.Parallel()

	job := baseOnlyJob()
	job.TitleEN = domain.String("")
	job.TagsUA = []string{"a"}
	job.TagsEN = []string{}

	require.Equal(t, "", Title(job, domain.LangEN))
	tags, ok := Tags(job, domain.LangEN).Get()
	require.True(t, ok)
	require.Empty(t, tags)
}

func TestTagsReturnsCopy(t *testing.T) {
	t.Parallel()

	job := fullJob()
	tags, _ := Tags(job, domain.LangEN).Get()
	tags[0] = "changed"
	require.Equal(t, "For Ukrainians", job.TagsEN[0])
}

func TestResolve(t *testing.T) {
	t.Parallel()

	job := fullJob()
	for _, group := range FieldGroups() {
		for _, lang := range domain.SupportedLangs() {
			value, err := Resolve(job, group, lang)
			require.NoError(t, err)
			require.True(t, value.Present, "%s/%s", group, lang)
			require.Equal(t, group, value.Group)
		}
	}

	value, err := Resolve(job, FieldTitle, domain.LangEN)
	require.NoError(t, err)
	require.Equal(t, "Cafe staff (part-time)", value.Text)

	value, err = Resolve(job, FieldTags, domain.LangJP)
	require.NoError(t, err)
	require.Equal(t, []string{"ウクライナ避難民歓迎"}, value.Tags)

	value, err = Resolve(baseOnlyJob(), FieldDescription, domain.LangJP)
	require.NoError(t, err)
	require.False(t, value.Present)
	require.Empty(t, value.Text)

	_, err = Resolve(job, FieldTitle, domain.Lang("de"))
	require.ErrorIs(t, err, domain.ErrUnsupportedLanguage)

	_, err = Resolve(job, FieldGroup("salaryRange"), domain.LangEN)
	require.Error(t, err)
}

func TestViews(t *testing.T) {
	t.Parallel()

	job := fullJob()
	job.JPLevel = domain.JPLevelBasic

	list := NewView(job, domain.LangJP)
	require.Equal(t, "カフェスタッフ（アルバイト）", list.Title)
	require.Equal(t, "アルバイト", list.TypeLabel)
	require.Equal(t, "短期", list.DurationLabel)
	require.Equal(t, "初級", list.JPLevelLabel)

	detail := DetailView(job, domain.LangJP)
	require.Equal(t, "基礎", detail.JPLevelLabel)

	english := DetailView(job, domain.LangEN)
	require.Equal(t, "Basic", english.JPLevelLabel)
	require.Equal(t, "Part-time", english.TypeLabel)
}
