package src

import (
	"regexp"

	log "github.com/sirupsen/logrus"
)

func Init_regex(rule string) (*regexp.Regexp, error) {
	r, err := regexp.Compile(rule)
	if err != nil {
		log.Errorf("Regular expression fail: %v", err)
		return nil, err
	}
	return r, nil
}

/* Eval_regex Check table name against regular expression, no expression matches everything */
func Eval_regex(re *regexp.Regexp, table string) bool {
	if re == nil {
		return true
	}
	return re.MatchString(table)
}
