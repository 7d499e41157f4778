package blogservice

import "github.com/jletan/inkpost/internal/common"

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
}

func validateDesc(v *common.Validator, desc string) {
	v.Check(desc != "", "desc", "must be provided")
}

func validateID(v *common.Validator, id, name string) {
	v.Check(id != "", name, "must be provided")
}
