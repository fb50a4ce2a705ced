// internal/config/config.go
package config

// Document holds the parsed site.toml. Every section is always populated:
// sections missing from the file are taken from Defaults.
type Document struct {
	Site       Site       `toml:"site"`
	Owner      Owner      `toml:"owner"`
	Social     Social     `toml:"social"`
	Skills     Skills     `toml:"skills"`
	Theme      Theme      `toml:"theme"`
	Navigation Navigation `toml:"navigation"`
	Features   Features   `toml:"features"`
	SEO        SEO        `toml:"seo"`
	Contact    Contact    `toml:"contact"`
}

type Site struct {
	Title         string `toml:"title"`
	Tagline       string `toml:"tagline"`
	Description   string `toml:"description"`
	Domain        string `toml:"domain"`
	Language      string `toml:"language"`
	CopyrightYear int    `toml:"copyright_year"`
}

type Owner struct {
	Name       string `toml:"name"`
	FullName   string `toml:"full_name"`
	Profession string `toml:"profession"`
	Bio        string `toml:"bio"`
	Location   string `toml:"location"`
	Email      string `toml:"email"`
}

type Social struct {
	GitHub   string `toml:"github"`
	LinkedIn string `toml:"linkedin"`
	Twitter  string `toml:"twitter"`
	X        string `toml:"x"`
	YouTube  string `toml:"youtube"`
	Website  string `toml:"website"`
	Blog     string `toml:"blog"`
}

// Skill is one entry of a skills list, e.g. {name = "Go", level = "Advanced", icon = "🐹"}.
type Skill struct {
	Name  string `toml:"name"`
	Level string `toml:"level"`
	Icon  string `toml:"icon"`
}

type Certification struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Icon        string `toml:"icon"`
}

type Skills struct {
	Programming    []Skill         `toml:"programming"`
	Technical      []Skill         `toml:"technical"`
	Networking     []Skill         `toml:"networking"`
	Certifications []Certification `toml:"certifications"`
}

// Theme holds the colour tokens rendered into the stylesheet.
type Theme struct {
	PrimaryColor   string `toml:"primary_color"`
	SecondaryColor string `toml:"secondary_color"`
	DarkBackground string `toml:"dark_background"`
	CardBackground string `toml:"card_background"`
	BorderColor    string `toml:"border_color"`
}

type Navigation struct {
	ShowHome     bool `toml:"show_home"`
	ShowProjects bool `toml:"show_projects"`
	ShowBlog     bool `toml:"show_blog"`
	ShowContact  bool `toml:"show_contact"`
}

type Features struct {
	ShowSkills         bool `toml:"show_skills"`
	ShowCertifications bool `toml:"show_certifications"`
	ShowProjects       bool `toml:"show_projects"`
	ShowBlog           bool `toml:"show_blog"`
	ShowSocialLinks    bool `toml:"show_social_links"`
	EnableDarkMode     bool `toml:"enable_dark_mode"`
	EnableAnimations   bool `toml:"enable_animations"`
}

type SEO struct {
	Keywords string `toml:"keywords"`
	Author   string `toml:"author"`
	Robots   string `toml:"robots"`
}

type Contact struct {
	ShowContactForm bool   `toml:"show_contact_form"`
	Email           string `toml:"email"`
	Phone           string `toml:"phone"`
	Address         string `toml:"address"`
}

// Project is one entry of projects.toml.
type Project struct {
	Name         string   `toml:"name"`
	Description  string   `toml:"description"`
	Category     string   `toml:"category"`
	Icon         string   `toml:"icon"`
	Link         string   `toml:"link"`
	Technologies []string `toml:"technologies"`
	Highlights   []string `toml:"highlights"`
}

// fileDocument mirrors Document with pointer sections so the loader can tell
// which sections the file actually declared.
type fileDocument struct {
	Site       *Site       `toml:"site"`
	Owner      *Owner      `toml:"owner"`
	Social     *Social     `toml:"social"`
	Skills     *Skills     `toml:"skills"`
	Theme      *Theme      `toml:"theme"`
	Navigation *Navigation `toml:"navigation"`
	Features   *Features   `toml:"features"`
	SEO        *SEO        `toml:"seo"`
	Contact    *Contact    `toml:"contact"`
}

// resolve replaces each default section with the file's section when the file
// declares it. Sections are replaced wholesale; fields are never merged.
func (f fileDocument) resolve(defaults Document) Document {
	doc := defaults
	if f.Site != nil {
		doc.Site = *f.Site
	}
	if f.Owner != nil {
		doc.Owner = *f.Owner
	}
	if f.Social != nil {
		doc.Social = *f.Social
	}
	if f.Skills != nil {
		doc.Skills = *f.Skills
	}
	if f.Theme != nil {
		doc.Theme = *f.Theme
	}
	if f.Navigation != nil {
		doc.Navigation = *f.Navigation
	}
	if f.Features != nil {
		doc.Features = *f.Features
	}
	if f.SEO != nil {
		doc.SEO = *f.SEO
	}
	if f.Contact != nil {
		doc.Contact = *f.Contact
	}
	return doc
}

type projectsFile struct {
	Projects []Project `toml:"projects"`
}
