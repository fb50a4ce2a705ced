package config

import "time"

// Defaults returns the complete fallback document. CopyrightYear is the
// calendar year of now; everything else is constant.
func Defaults(now time.Time) Document {
	return Document{
		Site: Site{
			Title:         "Portfolio Website",
			Tagline:       "Professional Portfolio",
			Description:   "A professional portfolio website",
			Domain:        "localhost",
			Language:      "en",
			CopyrightYear: now.Year(),
		},
		Owner: Owner{
			Name:       "Your Name",
			FullName:   "Your Full Name",
			Profession: "Professional",
			Bio:        "Professional bio goes here.",
			Location:   "Location",
			Email:      "contact@example.com",
		},
		Social: Social{},
		Skills: Skills{
			Programming:    []Skill{},
			Technical:      []Skill{},
			Networking:     []Skill{},
			Certifications: []Certification{},
		},
		Theme: Theme{
			PrimaryColor:   "#13B9FD",
			SecondaryColor: "#0175C2",
			DarkBackground: "#0D1117",
			CardBackground: "linear-gradient(145deg, #1C2128 0%, #22272E 100%)",
			BorderColor:    "#30363D",
		},
		Navigation: Navigation{
			ShowHome:     true,
			ShowProjects: true,
			ShowBlog:     true,
			ShowContact:  false,
		},
		Features: Features{
			ShowSkills:         true,
			ShowCertifications: true,
			ShowProjects:       true,
			ShowBlog:           true,
			ShowSocialLinks:    true,
			EnableDarkMode:     true,
			EnableAnimations:   true,
		},
		SEO: SEO{
			Keywords: "portfolio, professional",
			Author:   "Your Name",
			Robots:   "index, follow",
		},
		Contact: Contact{
			ShowContactForm: false,
			Email:           "contact@example.com",
		},
	}
}
