// Package site holds the constant informational content served by the
// public endpoints. There is no logic here; editing this file is how the
// copy changes.
package site

// GovernanceBoard describes the board of directors section.
type GovernanceBoard struct {
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
}

// GovernanceManagement describes the management committee section.
type GovernanceManagement struct {
	Description string   `json:"description"`
	Functions   []string `json:"functions"`
}

// GovernanceHead describes the head teacher section.
type GovernanceHead struct {
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
}

// GovernanceData is the full governance page payload.
type GovernanceData struct {
	Intro       map[string]string    `json:"intro"`
	Board       GovernanceBoard      `json:"board"`
	Management  GovernanceManagement `json:"management"`
	HeadTeacher GovernanceHead       `json:"headTeacher"`
}

// Partnership is one entry on the partnerships page.
type Partnership struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Focus       string `json:"focus"`
}

// HomeStats feeds the counters on the landing page.
type HomeStats struct {
	Students  int `json:"students"`
	Teachers  int `json:"teachers"`
	Programs  int `json:"programs"`
	YearsOpen int `json:"yearsOpen"`
}

// Page is a simple titled text payload used by the about and vision pages.
type Page struct {
	Title    string   `json:"title"`
	Intro    string   `json:"intro"`
	Sections []string `json:"sections"`
}

func Governance() GovernanceData {
	return GovernanceData{
		Intro: map[string]string{
			"title":       "Governance",
			"description": "Our governance structures ensure that every decision serves the best interests of the children we serve.",
		},
		Board: GovernanceBoard{
			Description: "The School Board of Directors provides strategic oversight, ensuring the school stays true to its mission.",
			Responsibilities: []string{
				"Strategic direction and policy approval",
				"Financial oversight and resource management",
				"Appointment and evaluation of school leadership",
				"Safeguarding and compliance oversight",
			},
		},
		Management: GovernanceManagement{
			Description: "The management committee handles the day-to-day running of the school.",
			Functions: []string{
				"Curriculum planning and delivery",
				"Staff recruitment and development",
				"Infrastructure and facilities management",
				"Community and parent engagement",
			},
		},
		HeadTeacher: GovernanceHead{
			Description: "The head teacher leads the academic programme and represents the school to the community.",
			Responsibilities: []string{
				"Academic standards and teacher supervision",
				"Student welfare and discipline",
				"Reporting to the board and management committee",
			},
		},
	}
}

func Partnerships() []Partnership {
	return []Partnership{
		{
			Name:        "Global Education Support Services",
			Description: "Supports teacher training and curriculum development across partner schools.",
			Focus:       "Teacher development",
		},
		{
			Name:        "National Education Coalition",
			Description: "A coalition advocating for policy changes that benefit vulnerable children.",
			Focus:       "Advocacy",
		},
		{
			Name:        "Child Protection Alliance",
			Description: "Works with schools to strengthen safeguarding practice and child welfare.",
			Focus:       "Child protection",
		},
	}
}

func Stats() HomeStats {
	return HomeStats{
		Students:  420,
		Teachers:  28,
		Programs:  6,
		YearsOpen: 12,
	}
}

func About() Page {
	return Page{
		Title: "About Us",
		Intro: "Heavenly Nature Schools provides quality education to children regardless of background.",
		Sections: []string{
			"Founded by educators committed to serving underserved communities.",
			"We combine a rigorous academic programme with character formation.",
			"Our campus hosts nursery through secondary levels.",
		},
	}
}

func Vision() Page {
	return Page{
		Title: "Our Vision",
		Intro: "A generation of learners equipped to transform their communities.",
		Sections: []string{
			"Excellence in teaching and learning.",
			"Care for the whole child: academic, physical and emotional.",
			"Partnership with families and the wider community.",
		},
	}
}
