// Package model contains identity and reference entities fetched from the
// academic records API. All values are immutable snapshots replaced wholesale
// on each fetch; JSON tags mirror the upstream wire names.
package model

// User is the identity record of the authenticated student.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	INE       string `json:"ine"` // institutional student identifier
	FirstName string `json:"prenom"`
	LastName  string `json:"nom"`
	Phone     string `json:"telephone"`
	Activated bool   `json:"activated"`

	// Enrollments is attached by a second lookup keyed by INE; the identity
	// endpoint itself returns none.
	Enrollments []Enrollment `json:"inscriptions,omitempty"`
}

// Enrollment links a student to a level for an academic year.
type Enrollment struct {
	ID           int64        `json:"id"`
	Date         string       `json:"dateInscription"`
	State        string       `json:"etat"`
	Level        Level        `json:"niveau"`
	AcademicYear AcademicYear `json:"anneeAccademique"`
	Group        Group        `json:"groupe"`
}

// Level is an academic level within a formation.
type Level struct {
	ID        int64     `json:"id"`
	Code      string    `json:"codeNiveau"`
	Label     string    `json:"libelle"`
	Terminal  bool      `json:"terminal"`
	Formation Formation `json:"formation"`
}

// Formation is a degree program owned by a department.
type Formation struct {
	ID         int64      `json:"id"`
	Code       string     `json:"codeFormation"`
	Name       string     `json:"nomFormation"`
	Department Department `json:"departement"`
}

// Department is the institutional unit owning formations.
type Department struct {
	ID    int64  `json:"id"`
	Code  string `json:"code"`
	Label string `json:"libelle"`
}

// AcademicYear is a school-year reference entity.
type AcademicYear struct {
	ID     int64  `json:"id"`
	Name   string `json:"nomAnneeAccademique"`
	Active bool   `json:"actif"`
}

// Group is the class group an enrollment belongs to.
type Group struct {
	ID    int64  `json:"id"`
	Code  string `json:"codeGroupe"`
	Label string `json:"libelleGroupe"`
}

// Semester is a selectable grading period.
type Semester struct {
	ID     int64  `json:"id"`
	Name   string `json:"nomSemestre"`
	Active bool   `json:"actif"`
}

// ExamSession is a selectable exam session ("normal", "rattrapage", ...).
type ExamSession struct {
	ID    int64  `json:"id"`
	Label string `json:"session"`
}

// ReclamationWindow describes the period during which grade complaints are
// accepted for a formation and session.
type ReclamationWindow struct {
	ID     int64  `json:"id"`
	Start  string `json:"dateDebut"`
	End    string `json:"dateFin"`
	Active bool   `json:"isActive"`
}
