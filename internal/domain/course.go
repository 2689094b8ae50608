package domain

// Unset marks a categorical field whose source column was missing or blank.
// It is distinguishable from a real empty string so downstream filters can
// treat "unset" as "don't exclude".
const Unset = ""

// Course is the canonical normalized course record. Built once by the catalog
// loader and never mutated afterwards.
type Course struct {
	Title            string
	Organization     string
	CertificateType  string // COURSE / SPECIALIZATION / PROFESSIONAL CERTIFICATE / ...
	Difficulty       string // Beginner / Intermediate / Advanced / Mixed
	Rating           float64 // 0..5, 0 when missing
	StudentsEnrolled float64 // expanded from "7.6k"/"1.2m" shorthand, 0 when missing
}
