package anamnesis

import "github.com/vgpsi/clinic-scheduler/internal/models"

// IsComplete applies the clinic's loose intake rule: the record counts as
// complete once any field carries a non-empty, non-false, non-zero value.
func IsComplete(a *models.Anamnesis) bool {
	if a == nil {
		return false
	}

	for _, s := range []string{
		a.CivilStatus, a.HasChildren, a.HadAbortion, a.Occupation, a.EducationLevel,
		a.MothersName, a.MothersRelationship, a.FathersName, a.FathersRelationship,
		a.HasSiblings, a.SiblingsRelationship, a.ChildhoodDescription,
		a.ContinuousMedication, a.MedicationsDetails, a.RelevantMedicalDiagnosis,
		a.SleepQuality, a.MainSymptomsOtherFear,
		a.AnxietyLevel, a.IrritabilityLevel, a.SadnessLevel,
		a.CarriesGuilt, a.CarriesInjustice,
		a.SuicidalThoughts, a.SuicidalThoughtsComment,
		a.HasCloseFriends, a.SocialConsideration, a.PhysicalActivity,
		a.FinancialStatus, a.DailyRoutine,
		a.HowFoundAnalysis, a.HowFoundAnalysisOther,
		a.PreviousTherapy, a.PreviousTherapyDuration,
		a.MainReason, a.SituationStart, a.TriggeringEvent, a.ExpectationsAnalysis,
		a.GeneralObservations,
	} {
		if s != "" {
			return true
		}
	}

	for _, b := range []bool{
		a.SubstanceUseMarijuana, a.SubstanceUseCocaine, a.SubstanceUseAlcohol,
		a.SubstanceUseCigarette, a.SubstanceUseNone,
		a.MainSymptomsSadness, a.MainSymptomsDepression, a.MainSymptomsAnxiety,
		a.MainSymptomsNervousness, a.MainSymptomsPhobias,
	} {
		if b {
			return true
		}
	}

	return a.NumberOfChildren != 0 || a.NumberOfSiblings != 0
}

// NormalizeSubstanceUse enforces the mutual exclusion between "none" and
// the individual substance flags: selecting "none" clears the others, and
// any concrete substance clears "none". Pure transition over the record.
func NormalizeSubstanceUse(a models.Anamnesis) models.Anamnesis {
	if a.SubstanceUseNone {
		a.SubstanceUseMarijuana = false
		a.SubstanceUseCocaine = false
		a.SubstanceUseAlcohol = false
		a.SubstanceUseCigarette = false
		return a
	}
	return a
}

// SetSubstanceUse flips one substance flag and reapplies the exclusion
// rule, mirroring how the intake form reacts to each checkbox.
func SetSubstanceUse(a models.Anamnesis, field string, checked bool) models.Anamnesis {
	switch field {
	case "none":
		a.SubstanceUseNone = checked
		if checked {
			return NormalizeSubstanceUse(a)
		}
		return a
	case "marijuana":
		a.SubstanceUseMarijuana = checked
	case "cocaine":
		a.SubstanceUseCocaine = checked
	case "alcohol":
		a.SubstanceUseAlcohol = checked
	case "cigarette":
		a.SubstanceUseCigarette = checked
	default:
		return a
	}

	if checked {
		a.SubstanceUseNone = false
	}
	return a
}
