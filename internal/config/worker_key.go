package config

type WorkerKeyStruct struct {
	GradeAuditQueue string
}

var WorkerKey = &WorkerKeyStruct{
	GradeAuditQueue: "grade_audit_queue",
}
