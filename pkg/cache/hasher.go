package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// ParentPreferenceInput is the canonical-hashing shape of one parent's
// request (spec.md §3 ParentRequest, gadget form).
type ParentPreferenceInput struct {
	Parent         string
	Teachers       []string
	PreferredSlots []string
}

// SchedulingInputHash computes a deterministic hash over a gadget-formulation
// scheduling request, used to key a memoized solve (spec.md §6 gadget input).
func SchedulingInputHash(timeSlots, teachers []string, prefs []ParentPreferenceInput, preferredReward, dropPenalty int64) string {
	slots := append([]string(nil), timeSlots...)
	teacherList := append([]string(nil), teachers...)
	sort.Strings(teacherList)

	prefList := make([]ParentPreferenceInput, len(prefs))
	copy(prefList, prefs)
	sort.Slice(prefList, func(i, j int) bool { return prefList[i].Parent < prefList[j].Parent })

	var buf []byte
	buf = append(buf, []byte(fmt.Sprintf("r:%d,d:%d;", preferredReward, dropPenalty))...)
	for i, s := range slots {
		buf = append(buf, []byte(fmt.Sprintf("slot:%d:%s;", i, s))...)
	}
	for _, t := range teacherList {
		buf = append(buf, []byte(fmt.Sprintf("teacher:%s;", t))...)
	}
	for _, p := range prefList {
		wantedTeachers := append([]string(nil), p.Teachers...)
		sort.Strings(wantedTeachers)
		preferred := append([]string(nil), p.PreferredSlots...)
		sort.Strings(preferred)
		buf = append(buf, []byte(fmt.Sprintf("p:%s:t=%v:s=%v;", p.Parent, wantedTeachers, preferred))...)
	}

	return ShortHash(buf)
}

// StudentInput is the canonical-hashing shape of one student (spec.md §3 Student).
type StudentInput struct {
	ID          string
	Preferences []string
	Sex         string // "", "m", "f"
	Categorical map[string]bool
}

// ClassInput is the canonical-hashing shape of one class definition.
type ClassInput struct {
	ID       string
	Capacity int
}

// ClassAssignInputHash computes a deterministic hash over a class-assignment
// request, used to key a memoized solve (spec.md §6 class assignment input).
func ClassAssignInputHash(students []StudentInput, classes []ClassInput, genderRatioM, genderRatioF float64, factorGender bool, timeLimitSeconds float64) string {
	studentList := make([]StudentInput, len(students))
	copy(studentList, students)
	sort.Slice(studentList, func(i, j int) bool { return studentList[i].ID < studentList[j].ID })

	classList := make([]ClassInput, len(classes))
	copy(classList, classes)
	sort.Slice(classList, func(i, j int) bool { return classList[i].ID < classList[j].ID })

	var buf []byte
	buf = append(buf, []byte(fmt.Sprintf("g:%.6f:%.6f:%v;tl:%.3f;", genderRatioM, genderRatioF, factorGender, timeLimitSeconds))...)
	for _, c := range classList {
		buf = append(buf, []byte(fmt.Sprintf("c:%s:%d;", c.ID, c.Capacity))...)
	}
	for _, s := range studentList {
		prefs := append([]string(nil), s.Preferences...)
		catKeys := make([]string, 0, len(s.Categorical))
		for k := range s.Categorical {
			catKeys = append(catKeys, k)
		}
		sort.Strings(catKeys)
		buf = append(buf, []byte(fmt.Sprintf("s:%s:sex=%s:prefs=%v:", s.ID, s.Sex, prefs))...)
		for _, k := range catKeys {
			buf = append(buf, []byte(fmt.Sprintf("%s=%v,", k, s.Categorical[k]))...)
		}
		buf = append(buf, ';')
	}

	return ShortHash(buf)
}

// BuildSolveKey builds a cache key for a scheduling or class-assignment solve
// from its input hash and the formulation that produced (or would produce) it.
func BuildSolveKey(kind, inputHash, formulation string) string {
	return fmt.Sprintf("solve:%s:%s:%s", kind, formulation, inputHash)
}

// QuickHash returns the full hex-encoded sha256 digest of data.
func QuickHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ShortHash returns a truncated (16-char) hex-encoded sha256 digest of data.
func ShortHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}
