package counselor

import (
	"net/url"
	"strings"
)

// EducationMapping holds course and college suggestions for a career keyword.
type EducationMapping struct {
	Courses  []string
	Colleges []string
}

type educationEntry struct {
	keyword string
	mapping EducationMapping
}

// Ordered keyword tables. Matching is a case-insensitive substring check
// against the career name, then the cluster; the first hit wins.
var educationTable = []educationEntry{
	{"software", EducationMapping{
		Courses:  []string{"Computer Science", "Software Engineering", "Information Technology", "Data Structures & Algorithms"},
		Colleges: []string{"MIT", "Stanford", "Carnegie Mellon", "UC Berkeley", "IIT Bombay"},
	}},
	{"data", EducationMapping{
		Courses:  []string{"Data Science", "Statistics", "Machine Learning", "Applied Mathematics"},
		Colleges: []string{"Harvard", "Stanford", "MIT", "UC Berkeley", "CMU"},
	}},
	{"doctor", EducationMapping{
		Courses:  []string{"MBBS", "Pre-Med", "Biology", "Biochemistry"},
		Colleges: []string{"Johns Hopkins", "AIIMS", "Harvard Medical", "Mayo Clinic School"},
	}},
	{"engineer", EducationMapping{
		Courses:  []string{"Engineering", "Physics", "Mathematics", "Technical Drawing"},
		Colleges: []string{"MIT", "Stanford", "IIT Delhi", "Caltech", "Georgia Tech"},
	}},
	{"designer", EducationMapping{
		Courses:  []string{"Design Thinking", "UX/UI Design", "Human-Computer Interaction", "Visual Communication"},
		Colleges: []string{"RISD", "Parsons", "NID", "MIT Media Lab"},
	}},
	{"business", EducationMapping{
		Courses:  []string{"Business Administration", "Economics", "Marketing", "Finance"},
		Colleges: []string{"Harvard Business", "Wharton", "INSEAD", "IIM Ahmedabad"},
	}},
	{"lawyer", EducationMapping{
		Courses:  []string{"Law", "Political Science", "Legal Studies", "Constitutional Law"},
		Colleges: []string{"Harvard Law", "Yale Law", "NLS Bangalore", "Oxford"},
	}},
	{"psychologist", EducationMapping{
		Courses:  []string{"Psychology", "Cognitive Science", "Behavioral Science", "Neuroscience"},
		Colleges: []string{"Stanford", "Harvard", "UCLA", "Cambridge"},
	}},
	{"architect", EducationMapping{
		Courses:  []string{"Architecture", "Urban Planning", "Design Studio", "Structural Engineering"},
		Colleges: []string{"MIT", "AA London", "SPA Delhi", "Harvard GSD"},
	}},
	{"writer", EducationMapping{
		Courses:  []string{"Creative Writing", "English Literature", "Journalism", "Communications"},
		Colleges: []string{"Iowa Writers' Workshop", "Columbia", "NYU", "Oxford"},
	}},
	{"scientist", EducationMapping{
		Courses:  []string{"Research Methodology", "Advanced Sciences", "Lab Techniques", "Scientific Writing"},
		Colleges: []string{"MIT", "Caltech", "IISc Bangalore", "Max Planck Institutes"},
	}},
	{"teacher", EducationMapping{
		Courses:  []string{"Education", "Pedagogy", "Child Psychology", "Curriculum Design"},
		Colleges: []string{"Harvard Education", "Columbia Teachers College", "TISS Mumbai"},
	}},
}

var defaultEducation = EducationMapping{
	Courses:  []string{"Related Field Fundamentals", "Industry Certifications", "Professional Development"},
	Colleges: []string{"Top universities in your region", "Specialized institutes"},
}

type videoEntry struct {
	keyword string
	url     string
}

var videoTable = []videoEntry{
	{"software", dayInLifeSearch("software engineer")},
	{"data", dayInLifeSearch("data scientist")},
	{"developer", dayInLifeSearch("developer")},
	{"engineer", dayInLifeSearch("engineer")},
	{"designer", dayInLifeSearch("ux designer")},
	{"doctor", dayInLifeSearch("medical doctor")},
	{"nurse", dayInLifeSearch("nurse")},
	{"medical", dayInLifeSearch("healthcare")},
	{"psychologist", dayInLifeSearch("psychologist")},
	{"consultant", dayInLifeSearch("consultant")},
	{"analyst", dayInLifeSearch("business analyst")},
	{"manager", dayInLifeSearch("manager")},
	{"entrepreneur", dayInLifeSearch("entrepreneur")},
	{"artist", dayInLifeSearch("artist")},
	{"writer", dayInLifeSearch("writer")},
	{"architect", dayInLifeSearch("architect")},
	{"scientist", dayInLifeSearch("scientist")},
	{"researcher", dayInLifeSearch("researcher")},
	{"lawyer", dayInLifeSearch("lawyer")},
	{"attorney", dayInLifeSearch("attorney")},
	{"teacher", dayInLifeSearch("teacher")},
	{"professor", dayInLifeSearch("professor")},
}

func dayInLifeSearch(query string) string {
	return "https://www.youtube.com/results?search_query=" + url.QueryEscape("day in the life "+query)
}

// LookupEducation returns course and college suggestions for a career,
// falling back to a generic mapping when no keyword matches.
func LookupEducation(careerName, cluster string) EducationMapping {
	name := strings.ToLower(careerName)
	clst := strings.ToLower(cluster)
	for _, e := range educationTable {
		if strings.Contains(name, e.keyword) || strings.Contains(clst, e.keyword) {
			return e.mapping
		}
	}
	return defaultEducation
}

// LookupVideo returns a "day in the life" video search URL for a career.
// Unmatched careers get a search built from the career name itself.
func LookupVideo(careerName, cluster string) string {
	name := strings.ToLower(careerName)
	clst := strings.ToLower(cluster)
	for _, e := range videoTable {
		if strings.Contains(name, e.keyword) || strings.Contains(clst, e.keyword) {
			return e.url
		}
	}
	return dayInLifeSearch(careerName)
}

// EnrichPaths backfills the optional fields of each path from the static
// tables. Values the model already supplied are left alone.
func EnrichPaths(paths []CareerPath) {
	for i := range paths {
		p := &paths[i]
		if len(p.SuggestedCourses) == 0 || len(p.SuggestedColleges) == 0 {
			mapping := LookupEducation(p.Name, p.Cluster)
			if len(p.SuggestedCourses) == 0 {
				p.SuggestedCourses = mapping.Courses
			}
			if len(p.SuggestedColleges) == 0 {
				p.SuggestedColleges = mapping.Colleges
			}
		}
		if p.DayInLifeVideo == "" {
			p.DayInLifeVideo = LookupVideo(p.Name, p.Cluster)
		}
	}
}
