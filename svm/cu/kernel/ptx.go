// Package kernel carries the PTX module for the device-side RBF Gram
// computation, assembled from rbf_gram.cu for sm_52.
package kernel

// PTXGramCUDA computes one tile of the RBF Gram matrix. Arguments are the
// row-major float32 feature matrix, the tile output buffer, and a five-word
// parameter block {n, d, rowStart, rowCount, gammaBits}.
const PTXGramCUDA = `
.version 6.4
.target sm_52
.address_size 64

.visible .entry rbf_gram(
	.param .u64 rbf_gram_param_0,
	.param .u64 rbf_gram_param_1,
	.param .u64 rbf_gram_param_2
)
{
	.reg .pred %p<6>;
	.reg .f32 %f<10>;
	.reg .b32 %r<16>;
	.reg .b64 %rd<10>;

	ld.param.u64 %rd1, [rbf_gram_param_0];
	ld.param.u64 %rd2, [rbf_gram_param_1];
	ld.param.u64 %rd3, [rbf_gram_param_2];
	cvta.to.global.u64 %rd1, %rd1;
	cvta.to.global.u64 %rd2, %rd2;
	cvta.to.global.u64 %rd3, %rd3;

	ld.global.u32 %r1, [%rd3];
	ld.global.u32 %r2, [%rd3+4];
	ld.global.u32 %r3, [%rd3+8];
	ld.global.u32 %r4, [%rd3+12];
	ld.global.f32 %f1, [%rd3+16];

	mov.u32 %r5, %ctaid.x;
	mov.u32 %r6, %ntid.x;
	mov.u32 %r7, %tid.x;
	mad.lo.s32 %r8, %r5, %r6, %r7;
	mov.u32 %r9, %ctaid.y;
	mov.u32 %r10, %ntid.y;
	mov.u32 %r11, %tid.y;
	mad.lo.s32 %r12, %r9, %r10, %r11;

	setp.ge.u32 %p1, %r8, %r1;
	setp.ge.u32 %p2, %r12, %r4;
	or.pred %p3, %p1, %p2;
	@%p3 bra $L_done;

	add.s32 %r13, %r12, %r3;

	mul.wide.u32 %rd4, %r13, %r2;
	shl.b64 %rd4, %rd4, 2;
	add.s64 %rd5, %rd1, %rd4;
	mul.wide.u32 %rd6, %r8, %r2;
	shl.b64 %rd6, %rd6, 2;
	add.s64 %rd7, %rd1, %rd6;

	mov.f32 %f2, 0f00000000;
	mov.u32 %r14, 0;
	setp.eq.u32 %p4, %r2, 0;
	@%p4 bra $L_store;

$L_loop:
	ld.global.f32 %f3, [%rd5];
	ld.global.f32 %f4, [%rd7];
	sub.f32 %f5, %f3, %f4;
	fma.rn.f32 %f2, %f5, %f5, %f2;
	add.s64 %rd5, %rd5, 4;
	add.s64 %rd7, %rd7, 4;
	add.s32 %r14, %r14, 1;
	setp.lt.u32 %p5, %r14, %r2;
	@%p5 bra $L_loop;

$L_store:
	neg.f32 %f6, %f1;
	mul.f32 %f7, %f6, %f2;
	mul.f32 %f8, %f7, 0f3FB8AA3B;
	ex2.approx.f32 %f9, %f8;

	mad.lo.s32 %r15, %r12, %r1, %r8;
	mul.wide.u32 %rd8, %r15, 4;
	add.s64 %rd9, %rd2, %rd8;
	st.global.f32 [%rd9], %f9;

$L_done:
	ret;
}
`
