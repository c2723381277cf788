package discovery

import "sort"

// CandidateSet holds the PIDs suspected of belonging to a prior instance of
// the managed service. Probes feeding it may overlap; set semantics collapse
// duplicates.
type CandidateSet struct {
	pids map[int]struct{}
}

func NewCandidateSet(pids ...int) *CandidateSet {
	s := &CandidateSet{pids: make(map[int]struct{})}
	s.Add(pids...)
	return s
}

func (s *CandidateSet) Add(pids ...int) {
	for _, pid := range pids {
		if pid > 0 {
			s.pids[pid] = struct{}{}
		}
	}
}

func (s *CandidateSet) Contains(pid int) bool {
	_, ok := s.pids[pid]
	return ok
}

func (s *CandidateSet) Len() int {
	return len(s.pids)
}

func (s *CandidateSet) IsEmpty() bool {
	return len(s.pids) == 0
}

// PIDs returns the members in ascending order for deterministic iteration.
func (s *CandidateSet) PIDs() []int {
	pids := make([]int, 0, len(s.pids))
	for pid := range s.pids {
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return pids
}
