package coursework

import "time"

// Week is one chapter of coursework. IDs are chosen by the content author
// ("week-01") and chapters are ordered by Index.
type Week struct {
	ID       string `gorm:"primaryKey;column:id" json:"id"`
	Index    int    `gorm:"not null;index;column:week_index" json:"index"`
	Title    string `gorm:"not null;column:title" json:"title"`
	ColabURL string `gorm:"column:colab_url" json:"colabUrl,omitempty"`
	QuizID   string `gorm:"column:quiz_id" json:"quizId,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Week) TableName() string { return "weeks" }

func (w *Week) HasQuiz() bool { return w != nil && w.QuizID != "" }

// GuideSource lists every place a guide's HTML may live. Resolution order is
// GuideHTML, then the path candidates, then GuideURL.
type GuideSource struct {
	GuideHTML     string `gorm:"type:text;column:guide_html" json:"guideHtml,omitempty" yaml:"guideHtml"`
	GuideHTMLPath string `gorm:"column:guide_html_path" json:"guideHtmlPath,omitempty" yaml:"guideHtmlPath"`
	HTMLPath      string `gorm:"column:html_path" json:"htmlPath,omitempty" yaml:"htmlPath"`
	GuidePath     string `gorm:"column:guide_path" json:"guidePath,omitempty" yaml:"guidePath"`
	Path          string `gorm:"column:path" json:"path,omitempty" yaml:"path"`
	GuideURL      string `gorm:"column:guide_url" json:"guideUrl,omitempty" yaml:"guideUrl"`
}

// PathCandidates returns the non-empty path fields in resolution order.
func (g GuideSource) PathCandidates() []string {
	out := make([]string, 0, 4)
	for _, p := range []string{g.GuideHTMLPath, g.HTMLPath, g.GuidePath, g.Path} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

type StudentMaterials struct {
	WeekID string `gorm:"primaryKey;column:week_id" json:"weekId"`
	GuideSource

	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (StudentMaterials) TableName() string { return "materials_student" }

type TeacherMaterials struct {
	WeekID string `gorm:"primaryKey;column:week_id" json:"weekId"`
	GuideSource

	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (TeacherMaterials) TableName() string { return "materials_teacher" }
